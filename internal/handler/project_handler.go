package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"forgeboard/internal/model"
	"forgeboard/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
	evm      *service.EVMService
}

func NewProjectHandler(projects *service.ProjectService, evm *service.EVMService) *ProjectHandler {
	return &ProjectHandler{projects: projects, evm: evm}
}

type projectRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Description          string   `json:"description"`
	Status               string   `json:"status"`
	Budget               float64  `json:"budget" binding:"gte=0"`
	Spent                float64  `json:"spent" binding:"gte=0"`
	CompletionPercentage float64  `json:"completion_percentage" binding:"gte=0,lte=100"`
	StartDate            string   `json:"start_date" binding:"required"`
	Deadline             string   `json:"deadline" binding:"required"`
	Manager              string   `json:"manager"`
	Tags                 []string `json:"tags"`
}

func (r *projectRequest) toModel() (*model.Project, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, err
	}
	deadline, err := time.Parse("2006-01-02", r.Deadline)
	if err != nil {
		return nil, err
	}
	return &model.Project{
		Name:                 r.Name,
		Description:          r.Description,
		Status:               r.Status,
		Budget:               r.Budget,
		Spent:                r.Spent,
		CompletionPercentage: r.CompletionPercentage,
		StartDate:            start,
		Deadline:             deadline,
		Manager:              r.Manager,
		Tags:                 r.Tags,
	}, nil
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	project, err := req.toModel()
	if err != nil {
		respondValidationError(c, err)
		return
	}

	id, err := h.projects.Create(c.Request.Context(), project)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, projects, gin.H{"count": len(projects)})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	project, err := req.toModel()
	if err != nil {
		respondValidationError(c, err)
		return
	}
	project.ID = id

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

// GetEVM returns the stored snapshot without recomputing it.
func (h *ProjectHandler) GetEVM(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.evm.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, record)
}

// RefreshEVM recomputes the snapshot from the project's current fields.
func (h *ProjectHandler) RefreshEVM(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.evm.Refresh(c.Request.Context(), id, "api")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, record)
}

// pathID parses a numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, 400, "validation_error", "invalid "+name)
		return 0, false
	}
	return id, true
}
