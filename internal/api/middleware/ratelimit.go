package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/wishbox/wishbox/internal/api/shared/errors"
	"github.com/wishbox/wishbox/internal/logger"
	"github.com/wishbox/wishbox/internal/ratelimit"
)

// RateLimit enforces a per-client-IP budget for one operation, and optionally
// a separate per-viewer budget when the request carries a viewer identity.
// Limiter errors fail open: a broken limiter must not take the API down.
func RateLimit(limiter ratelimit.Limiter, op string, perIP, perViewer ratelimit.Limit) gin.HandlerFunc {
	return func(c *gin.Context) {
		keys := []string{fmt.Sprintf("%s:ip:%s", op, c.ClientIP())}
		limits := []ratelimit.Limit{perIP}

		if perViewer.PerMinute > 0 {
			if hash := ViewerHash(c); hash != "" {
				keys = append(keys, fmt.Sprintf("%s:viewer:%s", op, hash))
				limits = append(limits, perViewer)
			}
		}

		for i, key := range keys {
			allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key, limits[i])
			if err != nil {
				logger.Warn("Rate limiter failed, allowing request",
					zap.String("key", key),
					zap.Error(err))
				continue
			}
			if !allowed {
				if retryAfter <= 0 {
					retryAfter = time.Second
				}
				c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
				apiErr := apierrors.NewRateLimitedError("Too many requests")
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": apiErr})
				return
			}
		}

		c.Next()
	}
}
