package handler

import (
	"errors"
	"net/http"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/middleware"
	"github.com/amchigale/konkani-dictionary/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles expert authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login handles POST /api/admin/login
// @Summary      Expert login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body domain.LoginRequest true "Credentials"
// @Success      200 {object} domain.LoginResponse
// @Failure      400 {object} common.APIResponse
// @Failure      401 {object} common.APIResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		common.HandleError(c, err, "Login failed")
		return
	}

	common.SuccessResponse(c, gin.H{
		"token": resp.Token,
		"user":  resp.User,
	})
}

// Validate handles GET /api/admin/validate
// @Summary      Validate expert token
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.APIResponse
// @Failure      401 {object} common.APIResponse
// @Router       /admin/validate [get]
func (h *AuthHandler) Validate(c *gin.Context) {
	common.SuccessResponse(c, gin.H{
		"user": domain.ExpertInfo{
			ID:    middleware.GetExpertID(c),
			Email: middleware.GetExpertEmail(c),
			Name:  middleware.GetExpertName(c),
		},
	})
}
