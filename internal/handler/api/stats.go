package api

import (
	"net/http"

	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/handler/httperr"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	queries queries.StatsQueries
}

func NewStatsHandler(qs queries.StatsQueries) *StatsHandler {
	return &StatsHandler{queries: qs}
}

// @Summary Get utilization and revenue statistics
// @Description Per-room and per-location utilization and revenue for the current month, with year-to-date revenue
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatsResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} httperr.Response
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	report, err := h.queries.Report(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromStatsReport(report))
}
