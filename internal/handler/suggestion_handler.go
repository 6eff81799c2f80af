package handler

import (
	"net/http"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/service"
	"github.com/gin-gonic/gin"
)

// SuggestionHandler handles public suggestion submission
type SuggestionHandler struct {
	service *service.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(svc *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: svc}
}

// Submit handles POST /api/suggestions
// @Summary      Submit a suggestion
// @Description  Proposes a new entry, a correction or a deletion for expert review
// @Tags         suggestions
// @Accept       json
// @Produce      json
// @Param        request body domain.SubmitSuggestionRequest true "Suggestion"
// @Success      200 {object} common.APIResponse
// @Failure      400 {object} common.APIResponse
// @Failure      500 {object} common.APIResponse
// @Router       /suggestions [post]
func (h *SuggestionHandler) Submit(c *gin.Context) {
	var req domain.SubmitSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		common.HandleError(c, err, "Failed to submit suggestion")
		return
	}

	common.SuccessResponse(c, gin.H{
		"message":      "Suggestion submitted successfully",
		"suggestionId": id,
	})
}
