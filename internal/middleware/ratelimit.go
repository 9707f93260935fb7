package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/symptom-triage-server/internal/domain"
)

const maxTrackedClients = 10000

// RateLimiter keeps a token bucket per client IP. Idle clients are forgotten
// after the configured TTL.
type RateLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients *expirable.LRU[string, *rate.Limiter]
	logger  *logrus.Logger
}

// NewRateLimiter creates a per-client rate limiter
func NewRateLimiter(config domain.RateLimitConfig, logger *logrus.Logger) *RateLimiter {
	ttl := config.ClientTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RateLimiter{
		limit:   rate.Limit(config.RequestsPerSecond),
		burst:   config.Burst,
		clients: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, ttl),
		logger:  logger,
	}
}

// Allow reports whether the client may make a request now
func (rl *RateLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	limiter, ok := rl.clients.Get(clientID)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.clients.Add(clientID, limiter)
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if rl.Allow(clientIP) {
			c.Next()
			return
		}

		requestID := c.GetString(CorrelationIDKey)
		rl.logger.WithFields(logrus.Fields{
			"client_ip":      clientIP,
			"correlation_id": requestID,
		}).Warn("Rate limit exceeded")

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			domain.NewAPIError(domain.ErrRateLimit, "Too many requests", "", requestID))
	}
}
