package middleware

import (
	"errors"
	"net/http"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/service"
	"github.com/amchigale/konkani-dictionary/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

const (
	ctxExpertID    = "expert_id"
	ctxExpertEmail = "expert_email"
	ctxExpertName  = "expert_name"
)

// ExpertAuth requires a valid expert session token
func ExpertAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ginutil.BearerToken(c)
		if !ok {
			common.AbortWithError(c, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		expert, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrExpiredToken):
				common.AbortWithError(c, http.StatusUnauthorized, "Token expired")
			case common.IsAuthError(err):
				common.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			default:
				common.AbortWithError(c, http.StatusInternalServerError, "Failed to validate token")
			}
			return
		}

		c.Set(ctxExpertID, expert.ID)
		c.Set(ctxExpertEmail, expert.Email)
		c.Set(ctxExpertName, expert.Name)
		c.Next()
	}
}

// GetExpertID extracts the authenticated expert ID from context
func GetExpertID(c *gin.Context) string {
	return c.GetString(ctxExpertID)
}

// GetExpertEmail extracts the authenticated expert email from context
func GetExpertEmail(c *gin.Context) string {
	return c.GetString(ctxExpertEmail)
}

// GetExpertName returns the authenticated expert's display name
func GetExpertName(c *gin.Context) string {
	return c.GetString(ctxExpertName)
}
