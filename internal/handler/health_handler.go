package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness
type HealthHandler struct {
	environment string
	version     string
	now         func() time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(environment, version string) *HealthHandler {
	return &HealthHandler{environment: environment, version: version, now: time.Now}
}

// Health handles GET /health
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"environment": h.environment,
		"version":     h.version,
	})
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Amchigale Konkani Dictionary API",
		"status":    "running",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
