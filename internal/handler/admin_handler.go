package handler

import (
	"net/http"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/middleware"
	"github.com/amchigale/konkani-dictionary/internal/service"
	"github.com/amchigale/konkani-dictionary/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the expert moderation queue
type AdminHandler struct {
	suggestions *service.SuggestionService
	reviews     *service.ReviewService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(suggestions *service.SuggestionService, reviews *service.ReviewService) *AdminHandler {
	return &AdminHandler{suggestions: suggestions, reviews: reviews}
}

// Stats handles GET /api/admin/stats
// @Summary      Moderation dashboard counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} domain.AdminStats
// @Failure      401 {object} common.APIResponse
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.suggestions.Stats(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "Failed to load statistics")
		return
	}

	common.SuccessResponse(c, gin.H{
		"pending":            stats.PendingCount,
		"approvedToday":      stats.ApprovedToday,
		"rejectedToday":      stats.RejectedToday,
		"activeContributors": stats.ActiveContributors,
	})
}

// ListSuggestions handles GET /api/admin/suggestions
// @Summary      List suggestions
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending | in_review | approved | rejected" default(pending)
// @Param        type   query string false "addition | correction | deletion"
// @Param        sort   query string false "created_at | created_at_asc | contributor" default(created_at)
// @Param        limit  query int    false "Page size" default(50)
// @Param        offset query int    false "Offset" default(0)
// @Success      200 {object} common.APIResponse
// @Failure      400 {object} common.APIResponse
// @Router       /admin/suggestions [get]
func (h *AdminHandler) ListSuggestions(c *gin.Context) {
	params := domain.SuggestionListParams{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Sort:   c.Query("sort"),
		Limit:  ginutil.QueryInt(c, "limit", service.DefaultSuggestionLimit),
		Offset: ginutil.QueryInt(c, "offset", 0),
	}

	items, err := h.suggestions.List(c.Request.Context(), params)
	if err != nil {
		common.HandleError(c, err, "Failed to list suggestions")
		return
	}
	if items == nil {
		items = []domain.SuggestionListItem{}
	}

	common.SuccessResponse(c, gin.H{
		"suggestions": items,
		"count":       len(items),
	})
}

// GetSuggestion handles GET /api/admin/suggestions/:id
// @Summary      Suggestion detail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Suggestion ID"
// @Success      200 {object} service.SuggestionDetail
// @Failure      404 {object} common.APIResponse
// @Router       /admin/suggestions/{id} [get]
func (h *AdminHandler) GetSuggestion(c *gin.Context) {
	detail, err := h.suggestions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.HandleError(c, err, "Failed to load suggestion")
		return
	}
	common.SuccessResponse(c, gin.H{"suggestion": detail})
}

// Review handles POST /api/admin/suggestions/:id/review
// @Summary      Approve or reject a suggestion
// @Description  Approval applies the suggestion (merged with any overrides in "apply")
// @Description  to the dictionary and records a change log entry in one transaction.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string               true "Suggestion ID"
// @Param        request body domain.ReviewRequest true "Decision"
// @Success      200 {object} domain.ReviewResult
// @Failure      400 {object} common.APIResponse
// @Failure      404 {object} common.APIResponse
// @Failure      409 {object} common.APIResponse
// @Router       /admin/suggestions/{id}/review [post]
func (h *AdminHandler) Review(c *gin.Context) {
	var req domain.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.reviews.Review(c.Request.Context(), service.ReviewInput{
		SuggestionID: c.Param("id"),
		ReviewerID:   middleware.GetExpertID(c),
		Decision:     req.Decision,
		Notes:        req.Notes,
		Overrides:    req.Apply,
	})
	if err != nil {
		common.HandleError(c, err, "Failed to review suggestion")
		return
	}

	common.SuccessResponse(c, gin.H{
		"message": "Suggestion " + result.Decision + " successfully",
		"result":  result,
	})
}

// Claim handles POST /api/admin/suggestions/:id/claim
// @Summary      Claim a pending suggestion for review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Suggestion ID"
// @Success      200 {object} common.APIResponse
// @Failure      404 {object} common.APIResponse
// @Failure      409 {object} common.APIResponse
// @Router       /admin/suggestions/{id}/claim [post]
func (h *AdminHandler) Claim(c *gin.Context) {
	if err := h.reviews.Claim(c.Request.Context(), c.Param("id"), middleware.GetExpertID(c)); err != nil {
		common.HandleError(c, err, "Failed to claim suggestion")
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Suggestion claimed"})
}
