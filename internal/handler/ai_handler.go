package handler

import (
	"github.com/gin-gonic/gin"

	"forgeboard/internal/service"
)

// AIHandler exposes the generated-analysis endpoints. Responses always
// arrive; the service falls back to its local generator when the upstream is
// unavailable.
type AIHandler struct {
	ai       *service.AIService
	projects *service.ProjectService
	evm      *service.EVMService
	raid     *service.RAIDService
}

func NewAIHandler(
	ai *service.AIService,
	projects *service.ProjectService,
	evm *service.EVMService,
	raid *service.RAIDService,
) *AIHandler {
	return &AIHandler{ai: ai, projects: projects, evm: evm, raid: raid}
}

// SummarizeProject answers POST /projects/:id/ai/summary.
func (h *AIHandler) SummarizeProject(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	record, err := h.evm.Get(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	summary, err := h.ai.SummarizeProject(c.Request.Context(), project, record)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"summary": summary})
}

// SuggestMitigation answers POST /raid/:entryId/ai/mitigation.
func (h *AIHandler) SuggestMitigation(c *gin.Context) {
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}

	entry, err := h.raid.Get(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	suggestion, err := h.ai.SuggestMitigation(c.Request.Context(), entry)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"suggestion": suggestion})
}
