package handler

import (
	"context"
	"net/http"

	"productpioneer/internal/app/pioneer/entity"

	"github.com/gin-gonic/gin"
)

type StatsServiceInterface interface {
	GetStatistics(ctx context.Context) (*entity.Statistics, error)
}

// StatsHandler отдает агрегированную аналитику для админской панели
type StatsHandler struct {
	statsService StatsServiceInterface
}

func NewStatsHandler(statsService StatsServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStatistics обрабатывает GET /statistics
func (h *StatsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statsService.GetStatistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get statistics"})
		return
	}

	c.JSON(http.StatusOK, entity.StatisticsResponse{Analytics: *stats})
}
