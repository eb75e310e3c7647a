package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/services"
	"github.com/wortquiz/progression/internal/utils"
	"gorm.io/gorm"
)

// PlayerHandler handles player registration, profile, and failed-word routes
type PlayerHandler struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
}

// Register handles POST /api/players
// @Summary Register a player
// @Description Creates progression state with defaults for a new account
// @Tags Players
// @Accept json
// @Produce json
// @Param body body object true "username, optional id and country"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /players [post]
func (h *PlayerHandler) Register(c *fiber.Ctx) error {
	var body struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Country  string `json:"country"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "players.validation.input")
	}

	player, err := services.RegisterPlayer(h.DB, body.ID, body.Username, body.Country)
	if err != nil {
		if errors.Is(err, services.ErrInvalidUsername) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "players.validation.username")
		}
		if errors.Is(err, services.ErrUsernameTaken) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "players.validation.username")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "registerPlayer")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          player.ID,
		"username":    player.Username,
		"level":       player.Level,
		"xp":          player.XP,
		"nextLevelXp": player.NextLevelXP,
		"streak":      player.Streak,
	})
}

// Profile handles GET /api/players/:id
// @Summary Player profile
// @Description Progression state with per-category best records and completion percentages
// @Tags Players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} services.Profile
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /players/{id} [get]
func (h *PlayerHandler) Profile(c *fiber.Ctx) error {
	id := requestUserID(c, c.Params("id"))

	profile, err := services.GetProfile(h.DB, h.Catalog, id)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Player '%s' not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getProfile")
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

// Rank handles GET /api/players/:id/rank
// @Summary Player global rank
// @Description 1-based position in the global ranking
// @Tags Players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /players/{id}/rank [get]
func (h *PlayerHandler) Rank(c *fiber.Ctx) error {
	id := requestUserID(c, c.Params("id"))

	rank, err := services.UserRank(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Player '%s' not found", id))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getUserRank")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"rank": rank})
}

// ClearScores handles DELETE /api/players/:id/scores
// @Summary Clear best scores
// @Description Deletes every best-score record for a player
// @Tags Players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /players/{id}/scores [delete]
func (h *PlayerHandler) ClearScores(c *fiber.Ctx) error {
	id := requestUserID(c, c.Params("id"))

	deleted, err := services.ClearBestScores(h.DB, id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "clearBestScores")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "deleted": deleted})
}

// RecordFailure handles POST /api/players/:id/failures
// @Summary Record a missed word
// @Description Increments the failure count for a word and refreshes its metadata
// @Tags Players
// @Accept json
// @Produce json
// @Param id path string true "Player ID"
// @Param body body services.FailureInput true "word, english, gender, category"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /players/{id}/failures [post]
func (h *PlayerHandler) RecordFailure(c *fiber.Ctx) error {
	id := requestUserID(c, c.Params("id"))

	var body services.FailureInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "players.validation.input")
	}
	if body.Word == "" {
		return utils.ErrorResponse(c, "word is required", fiber.StatusBadRequest, "players.validation.input")
	}

	if err := services.RecordFailure(h.DB, id, body); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "recordFailure")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// ListFailures handles GET /api/players/:id/failures
// @Summary List missed words
// @Description Missed words ordered by failure count
// @Tags Players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /players/{id}/failures [get]
func (h *PlayerHandler) ListFailures(c *fiber.Ctx) error {
	id := requestUserID(c, c.Params("id"))

	words, err := services.ListFailures(h.DB, id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listFailures")
	}

	out := make([]fiber.Map, 0, len(words))
	for _, w := range words {
		out = append(out, fiber.Map{
			"word":     w.Word,
			"english":  w.English,
			"gender":   w.Gender,
			"category": w.Category,
			"failures": w.Failures,
		})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// ClearFailures handles DELETE /api/players/:id/failures
// @Summary Clear missed words
// @Description Deletes the player's failed-word list
// @Tags Players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /players/{id}/failures [delete]
func (h *PlayerHandler) ClearFailures(c *fiber.Ctx) error {
	id := requestUserID(c, c.Params("id"))

	deleted, err := services.ClearFailures(h.DB, id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "clearFailures")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "deleted": deleted})
}
