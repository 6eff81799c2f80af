package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const agentRateKeyPrefix = "dictionary:ratelimit:agent:"

// fixedWindowScript counts a request in the current window and returns
// {count, remaining_ttl_ms}. The window starts with the first request.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
    ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// window is one in-memory fixed window
type window struct {
	count int
	start time.Time
}

// AgentRateLimiter is a fixed-window limiter keyed by agent API key or client IP.
// Counters live in Redis when a client is given; otherwise (or when Redis fails)
// they live in process memory and are lost on restart.
type AgentRateLimiter struct {
	redis  *redis.Client
	max    int
	window time.Duration

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

// NewAgentRateLimiter creates a limiter allowing max requests per window
func NewAgentRateLimiter(client *redis.Client, max int, win time.Duration) *AgentRateLimiter {
	return &AgentRateLimiter{
		redis:   client,
		max:     max,
		window:  win,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Reset clears every in-memory counter
func (rl *AgentRateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.windows = make(map[string]*window)
}

// Middleware must run after AgentAPIKey so the key is available
func (rl *AgentRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetAgentKey(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		count, retryAfter := rl.hit(c.Request.Context(), key)

		remaining := rl.max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > rl.max {
			secs := int((retryAfter + time.Second - 1) / time.Second)
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			common.AbortWithError(c, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		c.Next()
	}
}

// hit records a request for key and returns the count in the current
// window and the time until that window ends.
func (rl *AgentRateLimiter) hit(ctx context.Context, key string) (int, time.Duration) {
	if rl.redis != nil {
		count, ttl, err := rl.hitRedis(ctx, key)
		if err == nil {
			return count, ttl
		}
		logger.GetLogger().Warn().Err(err).Msg("agent rate limiter: redis unavailable, using in-memory counters")
	}
	return rl.hitMemory(key)
}

func (rl *AgentRateLimiter) hitRedis(ctx context.Context, key string) (int, time.Duration, error) {
	res, err := fixedWindowScript.Run(ctx, rl.redis, []string{agentRateKeyPrefix + key},
		rl.window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit reply: %v", res)
	}
	return int(res[0]), time.Duration(res[1]) * time.Millisecond, nil
}

func (rl *AgentRateLimiter) hitMemory(key string) (int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) > rl.window {
		w = &window{start: now}
		rl.windows[key] = w
	}
	w.count++

	return w.count, rl.window - now.Sub(w.start)
}

// sweep drops expired windows, at most once per window length. Caller holds mu.
func (rl *AgentRateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for key, w := range rl.windows {
		if now.Sub(w.start) > rl.window {
			delete(rl.windows, key)
		}
	}
}
