package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"forgeboard/internal/service"
)

type MarketplaceHandler struct {
	marketplace *service.MarketplaceService
}

func NewMarketplaceHandler(marketplace *service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplace: marketplace}
}

func (h *MarketplaceHandler) List(c *gin.Context) {
	installs, err := h.marketplace.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, installs, gin.H{"count": len(installs)})
}

// Entitlement answers GET /marketplace/modules/:moduleId/entitlement. The
// dashboard calls it before rendering an optional module's surface.
func (h *MarketplaceHandler) Entitlement(c *gin.Context) {
	moduleID := c.Param("moduleId")
	installed, err := h.marketplace.IsInstalled(c.Request.Context(), moduleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"module_id": moduleID, "installed": installed})
}

type installRequest struct {
	ModuleID string `json:"module_id" binding:"required"`
}

func (h *MarketplaceHandler) Install(c *gin.Context) {
	var req installRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	by := ""
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(int); ok {
			by = "user:" + strconv.Itoa(id)
		}
	}

	if err := h.marketplace.Install(c.Request.Context(), req.ModuleID, by); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"module_id": req.ModuleID, "installed": true})
}

func (h *MarketplaceHandler) Uninstall(c *gin.Context) {
	var req installRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.marketplace.Uninstall(c.Request.Context(), req.ModuleID, ""); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"module_id": req.ModuleID, "installed": false})
}
