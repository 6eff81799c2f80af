package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	expert *domain.Contributor
	err    error
	token  string
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	return nil, common.ErrInvalidCredentials
}

func (s *stubAuth) ValidateToken(ctx context.Context, token string) (*domain.Contributor, error) {
	s.token = token
	return s.expert, s.err
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestExpertAuth(t *testing.T) {
	expert := &domain.Contributor{ID: "c-1", Email: "expert@konkani.org", Name: "Dr. Konkani Expert"}

	tests := []struct {
		name   string
		header string
		err    error
		status int
	}{
		{"valid token", "Bearer good", nil, http.StatusOK},
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"expired", "Bearer old", common.ErrExpiredToken, http.StatusUnauthorized},
		{"revoked expert", "Bearer good", common.ErrUnauthorized, http.StatusUnauthorized},
		{"datastore failure", "Bearer good", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &stubAuth{expert: expert, err: tt.err}
			r := newRouter(ExpertAuth(auth))
			r.GET("/admin/validate", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"id":    GetExpertID(c),
					"email": GetExpertEmail(c),
					"name":  GetExpertName(c),
				})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/validate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			if tt.status == http.StatusOK {
				assert.Equal(t, "good", auth.token)
				assert.Equal(t, "c-1", body["id"])
				assert.Equal(t, "expert@konkani.org", body["email"])
				assert.Equal(t, "Dr. Konkani Expert", body["name"])
			} else {
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["message"])
			}
		})
	}
}

func TestAgentAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		target string
		header string
		status int
		key    string
	}{
		{"no keys configured", nil, "/agent", "", http.StatusOK, ""},
		{"header key", []string{"k1", "k2"}, "/agent", "k2", http.StatusOK, "k2"},
		{"query key", []string{"k1"}, "/agent?api_key=k1", "", http.StatusOK, "k1"},
		{"missing key", []string{"k1"}, "/agent", "", http.StatusUnauthorized, ""},
		{"unknown key", []string{"k1"}, "/agent", "nope", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(AgentAPIKey(tt.keys))
			r.POST("/agent", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"key": GetAgentKey(c)})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.key, body["key"])
			} else {
				assert.Equal(t, "Missing or invalid API key", body["message"])
			}
		})
	}
}

func agentRouter(rl *AgentRateLimiter, keys []string) *gin.Engine {
	r := newRouter(AgentAPIKey(keys), rl.Middleware())
	r.POST("/agent/search", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func postAgent(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agent/search", nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAgentRateLimiter_InMemoryFixedWindow(t *testing.T) {
	rl := NewAgentRateLimiter(nil, 2, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	r := agentRouter(rl, []string{"k1", "k2"})

	assert.Equal(t, http.StatusOK, postAgent(r, "k1").Code)
	w := postAgent(r, "k1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	now = now.Add(20 * time.Second)
	w = postAgent(r, "k1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "40", w.Header().Get("Retry-After"))
	assert.Equal(t, "Rate limit exceeded", decode(t, w)["message"])

	// counters are per key
	assert.Equal(t, http.StatusOK, postAgent(r, "k2").Code)

	now = now.Add(41 * time.Second)
	assert.Equal(t, http.StatusOK, postAgent(r, "k1").Code)
}

func TestAgentRateLimiter_EvictsExpiredWindows(t *testing.T) {
	rl := NewAgentRateLimiter(nil, 5, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.hitMemory("a")
	rl.hitMemory("b")
	now = now.Add(30 * time.Second)
	rl.hitMemory("c")
	assert.Len(t, rl.windows, 3)

	now = now.Add(31 * time.Second)
	count, _ := rl.hitMemory("c")
	assert.Equal(t, 2, count)
	assert.Len(t, rl.windows, 1)
	assert.Contains(t, rl.windows, "c")
}

func TestAgentRateLimiter_KeysByIPWithoutAPIKey(t *testing.T) {
	rl := NewAgentRateLimiter(nil, 1, time.Minute)
	r := agentRouter(rl, nil)

	assert.Equal(t, http.StatusOK, postAgent(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, postAgent(r, "").Code)
	assert.Contains(t, rl.windows, "ip:192.0.2.1")
}

func TestAgentRateLimiter_Reset(t *testing.T) {
	rl := NewAgentRateLimiter(nil, 1, time.Minute)
	r := agentRouter(rl, nil)

	assert.Equal(t, http.StatusOK, postAgent(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, postAgent(r, "").Code)

	rl.Reset()
	assert.Equal(t, http.StatusOK, postAgent(r, "").Code)
}

func TestAgentRateLimiter_FallsBackWhenRedisDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rl := NewAgentRateLimiter(client, 1, time.Minute)
	r := agentRouter(rl, nil)

	assert.Equal(t, http.StatusOK, postAgent(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, postAgent(r, "").Code)
}

func TestRequestLogger_PropagatesRequestID(t *testing.T) {
	r := newRouter(RequestLogger())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 8)
}

func TestBodyLimit(t *testing.T) {
	r := newRouter(BodyLimit(16))
	r.POST("/x", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(strings.Repeat("a", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newRouter(SecurityHeaders())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRedactQuery(t *testing.T) {
	assert.Equal(t, "", redactQuery(""))
	assert.Equal(t, "q=divo", redactQuery("q=divo"))
	assert.Equal(t, "api_key=REDACTED&q=divo", redactQuery("q=divo&api_key=secret"))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", maskKey("abc"))
	assert.Equal(t, "agen****", maskKey("agent-key-1"))
}
