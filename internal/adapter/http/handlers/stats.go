package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	lang := middleware.GetLang(c)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidUserID, lang))
		return
	}

	snapshot, err := h.statsService.Snapshot(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to compute stats", zap.Uint64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailStats, lang))
		return
	}

	c.JSON(http.StatusOK, mapper.ToStatsItem(snapshot))
}
