package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"forgeboard/internal/analytics"
	"forgeboard/internal/service"
)

type CapacityHandler struct {
	capacity *service.CapacityService
}

func NewCapacityHandler(capacity *service.CapacityService) *CapacityHandler {
	return &CapacityHandler{capacity: capacity}
}

// Heatmap answers GET /capacity/heatmap?start=YYYY-MM-DD&days=N.
func (h *CapacityHandler) Heatmap(c *gin.Context) {
	start, days, ok := windowParams(c)
	if !ok {
		return
	}

	heatmap, err := h.capacity.Heatmap(c.Request.Context(), start, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, heatmap, gin.H{"start": start.Format(analytics.DateKey), "days": days})
}

func (h *CapacityHandler) Bottlenecks(c *gin.Context) {
	start, days, ok := windowParams(c)
	if !ok {
		return
	}

	bottlenecks, err := h.capacity.Bottlenecks(c.Request.Context(), start, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, bottlenecks, gin.H{"count": len(bottlenecks)})
}

// Suggestions answers GET /capacity/suggestions?date=YYYY-MM-DD&hours=H.
func (h *CapacityHandler) Suggestions(c *gin.Context) {
	date, err := time.Parse(analytics.DateKey, c.Query("date"))
	if err != nil {
		respondError(c, 400, "validation_error", "date must be YYYY-MM-DD")
		return
	}
	hours, err := strconv.ParseFloat(c.DefaultQuery("hours", "1"), 64)
	if err != nil || hours <= 0 {
		respondError(c, 400, "validation_error", "hours must be a positive number")
		return
	}

	suggestions, err := h.capacity.Suggestions(c.Request.Context(), date, hours)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, suggestions, gin.H{"count": len(suggestions)})
}

func windowParams(c *gin.Context) (time.Time, int, bool) {
	start, err := time.Parse(analytics.DateKey, c.Query("start"))
	if err != nil {
		respondError(c, 400, "validation_error", "start must be YYYY-MM-DD")
		return time.Time{}, 0, false
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "14"))
	if err != nil || days < 1 || days > 90 {
		respondError(c, 400, "validation_error", "days must be between 1 and 90")
		return time.Time{}, 0, false
	}
	return start, days, true
}
