package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/service"
)

type TemplateHandler struct {
	templates *service.TemplateService
}

func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

type templateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Payload     json.RawMessage `json:"payload" binding:"required"`
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	id, err := h.templates.Create(c.Request.Context(), &model.Template{
		Name:        req.Name,
		Description: req.Description,
		Payload:     req.Payload,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, templates, gin.H{"count": len(templates)})
}

func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tpl, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, tpl)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

type instantiateRequest struct {
	Name      string `json:"name" binding:"required"`
	Manager   string `json:"manager"`
	StartDate string `json:"start_date" binding:"required"`
}

// Instantiate creates a new project from the template.
func (h *TemplateHandler) Instantiate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req instantiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondError(c, 400, "validation_error", "start_date must be YYYY-MM-DD")
		return
	}

	projectID, err := h.templates.Instantiate(c.Request.Context(), id, req.Name, req.Manager, start)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"project_id": projectID})
}
