package handler

import (
	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
)

// InventoryHandler covers the fabrication side: forge jobs queued against
// projects and flux devices tracked in the lab inventory.
type InventoryHandler struct {
	jobs    *repository.ForgeJobRepository
	devices *repository.FluxDeviceRepository
}

func NewInventoryHandler(jobs *repository.ForgeJobRepository, devices *repository.FluxDeviceRepository) *InventoryHandler {
	return &InventoryHandler{jobs: jobs, devices: devices}
}

func (h *InventoryHandler) CreateJob(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var job model.ForgeJob
	if err := c.ShouldBindJSON(&job); err != nil {
		respondValidationError(c, err)
		return
	}
	job.ProjectID = projectID
	if job.Status == "" {
		job.Status = "queued"
	}

	id, err := h.jobs.Insert(c.Request.Context(), &job)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *InventoryHandler) ListJobs(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	jobs, err := h.jobs.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, jobs, gin.H{"count": len(jobs)})
}

type jobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=queued running done failed"`
}

func (h *InventoryHandler) UpdateJobStatus(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	var req jobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.jobs.UpdateStatus(c.Request.Context(), jobID, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": jobID, "status": req.Status})
}

func (h *InventoryHandler) DeleteJob(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), jobID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": jobID})
}

func (h *InventoryHandler) CreateDevice(c *gin.Context) {
	var device model.FluxDevice
	if err := c.ShouldBindJSON(&device); err != nil {
		respondValidationError(c, err)
		return
	}
	if device.Status == "" {
		device.Status = "available"
	}

	id, err := h.devices.Insert(c.Request.Context(), &device)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *InventoryHandler) ListDevices(c *gin.Context) {
	devices, err := h.devices.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, devices, gin.H{"count": len(devices)})
}

type deviceAssignRequest struct {
	ProjectID *int64 `json:"project_id"`
	Status    string `json:"status" binding:"required,oneof=available assigned maintenance retired"`
}

// AssignDevice moves a device between projects and lifecycle states. A nil
// project id with status "available" releases it.
func (h *InventoryHandler) AssignDevice(c *gin.Context) {
	deviceID, ok := pathID(c, "deviceId")
	if !ok {
		return
	}

	var req deviceAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.devices.Assign(c.Request.Context(), deviceID, req.ProjectID, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": deviceID, "status": req.Status})
}

func (h *InventoryHandler) DeleteDevice(c *gin.Context) {
	deviceID, ok := pathID(c, "deviceId")
	if !ok {
		return
	}
	if err := h.devices.Delete(c.Request.Context(), deviceID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": deviceID})
}
