package handler

import (
	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
)

type BOMHandler struct {
	bom *repository.BOMRepository
}

func NewBOMHandler(bom *repository.BOMRepository) *BOMHandler {
	return &BOMHandler{bom: bom}
}

func (h *BOMHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var item model.BOMItem
	if err := c.ShouldBindJSON(&item); err != nil {
		respondValidationError(c, err)
		return
	}
	item.ProjectID = projectID
	if item.Status == "" {
		item.Status = "draft"
	}

	id, err := h.bom.Insert(c.Request.Context(), &item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *BOMHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.bom.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, gin.H{"count": len(items)})
}

// Tree returns the project's BOM assembled into parent/child trees.
func (h *BOMHandler) Tree(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.bom.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, model.BuildBOMTree(items))
}

func (h *BOMHandler) Update(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	existing, err := h.bom.FindByID(c.Request.Context(), itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var item model.BOMItem
	if err := c.ShouldBindJSON(&item); err != nil {
		respondValidationError(c, err)
		return
	}
	item.ID = itemID
	item.ProjectID = existing.ProjectID

	if err := h.bom.Update(c.Request.Context(), &item); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": itemID})
}

func (h *BOMHandler) Delete(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := h.bom.Delete(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": itemID})
}
