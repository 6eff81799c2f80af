package handler

import (
	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/service"
	"github.com/amchigale/konkani-dictionary/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// DictionaryHandler serves the public read API
type DictionaryHandler struct {
	service *service.DictionaryService
}

// NewDictionaryHandler creates a new DictionaryHandler
func NewDictionaryHandler(svc *service.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{service: svc}
}

// List handles GET /api/dictionary
// @Summary      List entries
// @Tags         dictionary
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Page size (max 100)" default(20)
// @Success      200 {object} common.APIResponse
// @Router       /dictionary [get]
func (h *DictionaryHandler) List(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", service.DefaultPageLimit)

	entries, pagination, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		common.HandleError(c, err, "Failed to fetch dictionary entries")
		return
	}

	common.SuccessResponse(c, gin.H{
		"entries":    entries,
		"pagination": pagination,
	})
}

// Search handles GET /api/dictionary/search
// @Summary      Search entries
// @Tags         dictionary
// @Produce      json
// @Param        q    query string true  "Search text"
// @Param        type query string false "all | english_word | devanagari | meaning | context | fulltext" default(all)
// @Success      200 {object} common.APIResponse
// @Failure      400 {object} common.APIResponse
// @Router       /dictionary/search [get]
func (h *DictionaryHandler) Search(c *gin.Context) {
	q := c.Query("q")
	searchType := c.DefaultQuery("type", service.SearchTypeAll)

	results, err := h.service.Search(c.Request.Context(), q, searchType)
	if err != nil {
		common.HandleError(c, err, "Failed to search dictionary entries")
		return
	}

	common.SuccessResponse(c, gin.H{
		"query":   q,
		"type":    searchType,
		"results": results,
		"count":   len(results),
	})
}

// Get handles GET /api/dictionary/:id
// @Summary      Get an entry
// @Description  id is either the entry UUID or its entry number
// @Tags         dictionary
// @Produce      json
// @Param        id path string true "UUID or entry number"
// @Success      200 {object} domain.DictionaryEntry
// @Failure      404 {object} common.APIResponse
// @Router       /dictionary/{id} [get]
func (h *DictionaryHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.HandleError(c, err, "Failed to fetch entry")
		return
	}
	common.SuccessResponse(c, gin.H{"entry": entry})
}

// History handles GET /api/dictionary/:id/history
// @Summary      Change log of an entry
// @Tags         dictionary
// @Produce      json
// @Param        id path string true "UUID or entry number"
// @Success      200 {object} common.APIResponse
// @Failure      404 {object} common.APIResponse
// @Router       /dictionary/{id}/history [get]
func (h *DictionaryHandler) History(c *gin.Context) {
	changes, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.HandleError(c, err, "Failed to fetch entry history")
		return
	}
	common.SuccessResponse(c, gin.H{"changes": changes, "count": len(changes)})
}

// Stats handles GET /api/stats
// @Summary      Dictionary statistics
// @Tags         dictionary
// @Produce      json
// @Success      200 {object} domain.DictionaryStats
// @Router       /stats [get]
func (h *DictionaryHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "Failed to fetch statistics")
		return
	}

	common.SuccessResponse(c, gin.H{
		"total_entries":         stats.TotalEntries,
		"with_devanagari":       stats.WithDevanagari,
		"with_english_alphabet": stats.WithEnglishAlphabet,
		"needing_correction":    stats.NeedingCorrection,
	})
}
