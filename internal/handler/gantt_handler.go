package handler

import (
	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
)

type GanttHandler struct {
	gantt *repository.GanttRepository
}

func NewGanttHandler(gantt *repository.GanttRepository) *GanttHandler {
	return &GanttHandler{gantt: gantt}
}

func (h *GanttHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var task model.GanttTask
	if err := c.ShouldBindJSON(&task); err != nil {
		respondValidationError(c, err)
		return
	}
	task.ProjectID = projectID

	id, err := h.gantt.Insert(c.Request.Context(), &task)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *GanttHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tasks, err := h.gantt.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, tasks, gin.H{"count": len(tasks)})
}

func (h *GanttHandler) Update(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	var task model.GanttTask
	if err := c.ShouldBindJSON(&task); err != nil {
		respondValidationError(c, err)
		return
	}
	task.ID = taskID

	if err := h.gantt.Update(c.Request.Context(), &task); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": taskID})
}

func (h *GanttHandler) Delete(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	if err := h.gantt.Delete(c.Request.Context(), taskID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": taskID})
}
