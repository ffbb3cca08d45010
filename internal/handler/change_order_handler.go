package handler

import (
	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
)

type ChangeOrderHandler struct {
	orders *repository.ChangeOrderRepository
}

func NewChangeOrderHandler(orders *repository.ChangeOrderRepository) *ChangeOrderHandler {
	return &ChangeOrderHandler{orders: orders}
}

type changeOrderRequest struct {
	Kind        string  `json:"kind" binding:"required,oneof=eco ecr"`
	Title       string  `json:"title" binding:"required"`
	Reason      string  `json:"reason"`
	AffectedBOM []int64 `json:"affected_bom_ids"`
	RequestedBy string  `json:"requested_by"`
}

func (h *ChangeOrderHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req changeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	order := &model.ChangeOrder{
		ProjectID:   projectID,
		Kind:        req.Kind,
		Title:       req.Title,
		Reason:      req.Reason,
		Status:      "draft",
		AffectedBOM: req.AffectedBOM,
		RequestedBy: req.RequestedBy,
	}

	id, err := h.orders.Insert(c.Request.Context(), order)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *ChangeOrderHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	orders, err := h.orders.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, orders, gin.H{"count": len(orders)})
}

func (h *ChangeOrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	order, err := h.orders.FindByID(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, order)
}

type changeOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft review approved implemented rejected"`
}

func (h *ChangeOrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	var req changeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": orderID, "status": req.Status})
}

func (h *ChangeOrderHandler) Delete(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": orderID})
}
