package http

import (
	"context"
	"net/http"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/bot"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/move"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type MoveHandler struct {
	Moves *move.Service
}

func NewMoveHandler(moves *move.Service) *MoveHandler {
	return &MoveHandler{Moves: moves}
}

// ChooseMove answers POST /api/move
func (h *MoveHandler) ChooseMove(c *gin.Context) {
	var req move.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.Moves.ChooseMove(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// statusFor maps engine errors to HTTP codes. Anything else the caller sent
// wrong (bad preset overrides included) is a 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoLegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// ListPresets answers GET /api/presets
func (h *MoveHandler) ListPresets(c *gin.Context) {
	type presetResponse struct {
		bot.Preset
		BudgetMs int64 `json:"budget_ms"`
	}
	presets := bot.Presets()
	response := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		response = append(response, presetResponse{Preset: p, BudgetMs: p.Budget.Milliseconds()})
	}
	c.JSON(http.StatusOK, gin.H{
		"default": bot.DefaultPreset,
		"weights": bot.WeightNames(),
		"presets": response,
	})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
