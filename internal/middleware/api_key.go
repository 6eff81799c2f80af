package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/gin-gonic/gin"
)

const ctxAgentKey = "agent_key"

// AgentAPIKey authenticates agent requests using a shared API key.
// Checks X-API-Key header or api_key query parameter. An empty key list
// leaves the route open.
func AgentAPIKey(keys []string) gin.HandlerFunc {
	allowed := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			allowed = append(allowed, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}
		if key == "" || !matchKey(allowed, []byte(key)) {
			common.AbortWithError(c, http.StatusUnauthorized, "Missing or invalid API key")
			return
		}

		c.Set(ctxAgentKey, key)
		c.Next()
	}
}

func matchKey(allowed [][]byte, key []byte) bool {
	ok := false
	for _, k := range allowed {
		if subtle.ConstantTimeCompare(k, key) == 1 {
			ok = true
		}
	}
	return ok
}

// GetAgentKey returns the API key the request authenticated with, if any
func GetAgentKey(c *gin.Context) string {
	return c.GetString(ctxAgentKey)
}
