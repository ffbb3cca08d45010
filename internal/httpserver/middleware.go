package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"forgeboard/internal/model"
	"forgeboard/internal/service"
	"forgeboard/internal/util"
	"forgeboard/pkg/apikey"
	"forgeboard/pkg/metrics"
	"forgeboard/pkg/trace"
)

const (
	ctxUserID = "user_id"
	ctxAPIKey = "api_key"
)

// TraceMiddleware takes the inbound trace id (or mints one) and puts it on
// the request context and the response header.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(trace.HeaderName)
		if traceID == "" {
			traceID = trace.NewTraceID()
		}
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))
		c.Header(trace.HeaderName, traceID)
		c.Next()
	}
}

// LoggingMiddleware records one structured line and the latency histogram per
// request.
func LoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(status), duration)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("trace_id", trace.FromContext(c.Request.Context())),
		)
	}
}

// JWTAuthMiddleware guards the dashboard routes.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractBearerToken(c.Request)
		if token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		userID, err := util.ParseJWT(token, secret)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// APIKeyAuthenticator is the slice of APIKeyService the middleware needs.
type APIKeyAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*model.APIKey, error)
	Authorize(key *model.APIKey, permission string) error
}

// APIKeyMiddleware guards the /api/v1 integration routes. The key must
// authenticate and carry the permission required by the route.
func APIKeyMiddleware(keys APIKeyAuthenticator, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractBearerToken(c.Request)
		if token == "" {
			abortUnauthorized(c, "missing api key")
			return
		}

		key, err := keys.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidAPIKey) {
				abortUnauthorized(c, "invalid api key")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"code": "internal_error", "message": "internal server error"},
			})
			return
		}

		// Any authorization failure aborts; unknown errors must not let the
		// request through.
		if err := keys.Authorize(key, permission); err != nil {
			var denied *apikey.PermissionDeniedError
			if errors.As(err, &denied) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"success": false,
					"error":   gin.H{"code": "forbidden", "message": "insufficient permissions"},
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"code": "internal_error", "message": "internal server error"},
			})
			return
		}

		c.Set(ctxAPIKey, key)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "unauthorized", "message": message},
	})
}

// APIKeyFromContext returns the authenticated key set by APIKeyMiddleware.
func APIKeyFromContext(c *gin.Context) (*model.APIKey, bool) {
	v, ok := c.Get(ctxAPIKey)
	if !ok {
		return nil, false
	}
	key, ok := v.(*model.APIKey)
	return key, ok
}

// UserIDFromContext returns the user id set by JWTAuthMiddleware.
func UserIDFromContext(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
