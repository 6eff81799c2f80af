package handler

import (
	"net/http"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/service"
	"github.com/gin-gonic/gin"
)

// AgentSearchRequest chatbot search body
type AgentSearchRequest struct {
	Q     string `json:"q"`
	Limit int    `json:"limit"`
}

// AgentHandler serves compact lookups for chatbot agents
type AgentHandler struct {
	service *service.DictionaryService
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(svc *service.DictionaryService) *AgentHandler {
	return &AgentHandler{service: svc}
}

// Search handles POST /api/agent/search
// @Summary      Agent search
// @Description  Headword/meaning lookup returning compact hits. Requires X-API-Key when keys are configured.
// @Tags         agent
// @Accept       json
// @Produce      json
// @Param        request body AgentSearchRequest true "Query"
// @Success      200 {object} common.APIResponse
// @Failure      400 {object} common.APIResponse
// @Failure      401 {object} common.APIResponse
// @Failure      429 {object} common.APIResponse
// @Security     ApiKeyAuth
// @Router       /agent/search [post]
func (h *AgentHandler) Search(c *gin.Context) {
	var req AgentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	hits, err := h.service.AgentSearch(c.Request.Context(), req.Q, req.Limit)
	if err != nil {
		common.HandleError(c, err, "Agent search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"q":       req.Q,
		"count":   len(hits),
		"results": hits,
	})
}
