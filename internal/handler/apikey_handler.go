package handler

import (
	"github.com/gin-gonic/gin"

	"forgeboard/internal/service"
)

// APIKeyHandler is the dashboard-side admin surface for integration keys.
type APIKeyHandler struct {
	keys *service.APIKeyService
}

func NewAPIKeyHandler(keys *service.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{keys: keys}
}

type createKeyRequest struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

// Create returns the full token once; it cannot be retrieved again.
func (h *APIKeyHandler) Create(c *gin.Context) {
	var req createKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	token, key, err := h.keys.Create(c.Request.Context(), req.Name, req.Permissions)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"token": token, "key": key})
}

func (h *APIKeyHandler) List(c *gin.Context) {
	keys, err := h.keys.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, keys, gin.H{"count": len(keys)})
}

func (h *APIKeyHandler) Revoke(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.keys.Revoke(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "revoked": true})
}
