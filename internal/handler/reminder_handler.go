package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/service"
)

type ReminderHandler struct {
	reminders *service.ReminderService
}

func NewReminderHandler(reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

type reminderRequest struct {
	ProjectID *int64    `json:"project_id"`
	Title     string    `json:"title" binding:"required"`
	Channel   string    `json:"channel" binding:"omitempty,oneof=email webhook"`
	DueAt     time.Time `json:"due_at" binding:"required"`
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	id, err := h.reminders.Create(c.Request.Context(), &model.Reminder{
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Channel:   req.Channel,
		DueAt:     req.DueAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.reminders.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, reminders, gin.H{"count": len(reminders)})
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reminders.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}
