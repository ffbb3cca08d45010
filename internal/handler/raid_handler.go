package handler

import (
	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/service"
)

type RAIDHandler struct {
	raid *service.RAIDService
}

func NewRAIDHandler(raid *service.RAIDService) *RAIDHandler {
	return &RAIDHandler{raid: raid}
}

type raidRequest struct {
	Type        string `json:"type" binding:"required,oneof=risk assumption issue dependency"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Owner       string `json:"owner"`
	Probability int    `json:"probability"`
	Impact      int    `json:"impact"`
}

func (h *RAIDHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req raidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	entry := &model.RAIDEntry{
		ProjectID:   projectID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Owner:       req.Owner,
		Probability: req.Probability,
		Impact:      req.Impact,
	}
	if entry.Status == "" {
		entry.Status = "identified"
	}

	id, err := h.raid.Create(c.Request.Context(), entry)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	entry.ID = id
	respondCreated(c, entry)
}

func (h *RAIDHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.raid.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, entries, gin.H{"count": len(entries)})
}

func (h *RAIDHandler) Update(c *gin.Context) {
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	existing, err := h.raid.Get(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req raidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	existing.Type = req.Type
	existing.Title = req.Title
	existing.Description = req.Description
	existing.Status = req.Status
	existing.Owner = req.Owner
	existing.Probability = req.Probability
	existing.Impact = req.Impact

	if err := h.raid.Update(c.Request.Context(), existing); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, existing)
}

func (h *RAIDHandler) Delete(c *gin.Context) {
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}
	if err := h.raid.Delete(c.Request.Context(), entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": entryID})
}
