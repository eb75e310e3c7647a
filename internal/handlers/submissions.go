package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/services"
	"github.com/wortquiz/progression/internal/types"
	"github.com/wortquiz/progression/internal/utils"
	"gorm.io/gorm"
)

// SubmissionHandler handles practice-result submissions
type SubmissionHandler struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
}

type submissionRequest struct {
	UserID   string             `json:"userId"`
	Category string             `json:"category"`
	Score    *types.FlexInt     `json:"score"`
	Time     *types.FlexFloat64 `json:"time"`
}

// Create handles POST /api/submissions
// @Summary Submit a practice result
// @Description Records a practice-session result, updating best score, streak, XP, and level on improvement
// @Tags Progression
// @Accept json
// @Produce json
// @Param body body object true "userId, category, score, time"
// @Success 200 {object} services.Outcome
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /submissions [post]
func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	var body submissionRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "progression.validation.input")
	}

	if body.Score == nil || body.Time == nil {
		return utils.ErrorResponse(c, "score and time are required", fiber.StatusBadRequest, "progression.validation.input")
	}

	sub := services.Submission{
		UserID:   requestUserID(c, body.UserID),
		Category: body.Category,
		Score:    body.Score.Int(),
		Time:     body.Time.Float64(),
	}

	outcome, err := services.RecordSubmission(h.DB, h.Catalog, sub, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return utils.NotFoundResponse(c, "Player not found")
		}
		if errors.Is(err, services.ErrConflict) {
			return utils.ConflictResponse(c)
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "recordSubmission")
	}

	if outcome.Status == services.StatusRejected {
		return utils.ErrorResponse(c, outcome.Reason, fiber.StatusBadRequest, "progression.validation.submission")
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}
