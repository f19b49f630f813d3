package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"realagent/internal/service"
)

// StatsHandler serves aggregate user statistics.
type StatsHandler struct {
	svc service.UserService
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(svc service.UserService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// UserStats godoc
// @Summary Get user statistics
// @Tags stats
// @Produce json
// @Success 200 {object} service.UserStats
// @Router /stats/users [get]
func (h *StatsHandler) UserStats(c echo.Context) error {
	stats, err := h.svc.UserStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
