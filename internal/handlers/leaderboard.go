package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/services"
	"github.com/wortquiz/progression/internal/types"
	"github.com/wortquiz/progression/internal/utils"
	"gorm.io/gorm"
)

// LeaderboardHandler handles leaderboard and ranking routes
type LeaderboardHandler struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
}

type leaderboardRequest struct {
	UserID   string             `json:"userId"`
	Username string             `json:"username"`
	Category string             `json:"category"`
	Score    *types.FlexInt     `json:"score"`
	Time     *types.FlexFloat64 `json:"time"`
}

// Submit handles POST /api/leaderboard
// @Summary Submit a leaderboard run
// @Description Admits a run to the category leaderboard when the score equals the category word count
// @Tags Leaderboard
// @Accept json
// @Produce json
// @Param body body object true "userId, username, category, score, time"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leaderboard [post]
func (h *LeaderboardHandler) Submit(c *fiber.Ctx) error {
	var body leaderboardRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "leaderboard.validation.input")
	}

	if body.Score == nil || body.Time == nil || body.Category == "" {
		return utils.ErrorResponse(c, "category, score and time are required", fiber.StatusBadRequest, "leaderboard.validation.input")
	}

	admitted, err := services.SubmitLeaderboardEntry(
		h.DB, h.Catalog,
		requestUserID(c, body.UserID), body.Username,
		body.Category, body.Score.Int(), body.Time.Float64(),
	)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "submitLeaderboard")
	}

	status := "ignored"
	if admitted {
		status = "accepted"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": status})
}

// Category handles GET /api/leaderboard/:category
// @Summary Category top 10
// @Description Fastest perfect run per user for a category, ascending by time
// @Tags Leaderboard
// @Produce json
// @Param category path string true "Category (raw or canonical)"
// @Success 200 {array} services.LeaderboardRow
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /leaderboard/{category} [get]
func (h *LeaderboardHandler) Category(c *fiber.Ctx) error {
	rows, err := services.CategoryLeaderboard(h.DB, h.Catalog, c.Params("category"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getCategoryLeaderboard")
	}
	if rows == nil {
		rows = []services.LeaderboardRow{}
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}

// Ranking handles GET /api/ranking
// @Summary Global ranking
// @Description Players ordered by level, XP, streak, and account age
// @Tags Leaderboard
// @Produce json
// @Param limit query int false "Maximum rows (default 10)"
// @Success 200 {array} services.RankedPlayer
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ranking [get]
func (h *LeaderboardHandler) Ranking(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	ranked, err := services.GlobalRanking(h.DB, limit)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getGlobalRanking")
	}
	return c.Status(fiber.StatusOK).JSON(ranked)
}
