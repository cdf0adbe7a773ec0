package server

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/whateat/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/whateat/internal/observability/metrics"
	"github.com/smallbiznis/whateat/internal/ratelimit"
	"go.uber.org/zap"
)

const rateLimitReasonUserRate = "user-rate"

// DrawRateLimit throttles draw requests per user before they reach the
// orchestrator. Limiter failures fail open.
func (s *Server) DrawRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.drawLimiter.Enabled() {
			c.Next()
			return
		}

		user, ok := currentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := c.Request.Context()
		result, err := s.drawLimiter.AllowUser(ctx, user.ID.String())
		if err != nil {
			logger.FromContext(ctx).Warn("draw rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !result.Allowed {
			denyDrawRateLimit(c, normalizeRateLimitEndpoint(c), result, s.obsMetrics)
			return
		}

		c.Next()
	}
}

func denyDrawRateLimit(c *gin.Context, endpoint string, result *ratelimit.RateLimitResult, metrics *obsmetrics.Metrics) {
	ctx := c.Request.Context()
	logger.FromContext(ctx).Warn("draw rate limit exceeded",
		zap.String("reason", rateLimitReasonUserRate),
		zap.String("endpoint", endpoint),
	)
	recordRateLimitDenied(ctx, endpoint, rateLimitReasonUserRate, metrics)

	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(result)))
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	AbortWithError(c, ErrRateLimited)
}

func retryAfterSeconds(result *ratelimit.RateLimitResult) int {
	seconds := int(result.RetryAfter.Seconds())
	if result.RetryAfter > 0 && float64(seconds) < result.RetryAfter.Seconds() {
		seconds++
	}
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

func recordRateLimitDenied(ctx context.Context, endpoint, reason string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitDenied(ctx, endpoint, reason)
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}
