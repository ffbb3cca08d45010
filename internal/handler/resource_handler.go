package handler

import (
	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
)

type ResourceHandler struct {
	resources *repository.ResourceRepository
}

func NewResourceHandler(resources *repository.ResourceRepository) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var res model.Resource
	if err := c.ShouldBindJSON(&res); err != nil {
		respondValidationError(c, err)
		return
	}
	if res.StandardDailyHours == 0 {
		res.StandardDailyHours = 8
	}

	id, err := h.resources.Insert(c.Request.Context(), &res)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.resources.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, res)
}

func (h *ResourceHandler) List(c *gin.Context) {
	resources, err := h.resources.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, resources, gin.H{"count": len(resources)})
}

func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var res model.Resource
	if err := c.ShouldBindJSON(&res); err != nil {
		respondValidationError(c, err)
		return
	}
	res.ID = id

	if err := h.resources.Update(c.Request.Context(), &res); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.resources.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}
