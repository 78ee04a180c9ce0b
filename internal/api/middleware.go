package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/cache"
	"github.com/inkwell-blog/inkwell/pkg/logging"
	"github.com/inkwell-blog/inkwell/pkg/telemetry"
)

// gin context key for the authenticated claims
const claimsKey = "authClaims"

// Claims returns the authenticated identity of the request, nil when the
// request carried no valid token.
func Claims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// ErrorHandler converts errors attached to the context into the response
// envelope. Unrecognized errors become a 500 with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			logging.GetLogger().Error("Unhandled request error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			apiErr = Internal("something went wrong")
		}

		Respond(c, apiErr.Status, apiErr.Message, nil)
	}
}

// RequestLogger logs each request and wraps it in a trace span.
func RequestLogger() gin.HandlerFunc {
	logger := logging.GetLogger().With(zap.String("component", "api"))

	return func(c *gin.Context) {
		start := time.Now()

		ctx, span := telemetry.StartSpan(c.Request.Context(), c.Request.Method+" "+c.FullPath(),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.target", c.Request.URL.Path),
			),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
		span.End()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Authenticate verifies the bearer token and stores its claims on the
// context. Requests without credentials are rejected here.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			Respond(c, http.StatusUnauthorized, "no credentials provided", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ParseToken(tokenString, secret)
		if err != nil {
			Respond(c, http.StatusUnauthorized, "invalid credentials", nil)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles rejects authenticated callers whose role is not listed.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			Respond(c, http.StatusUnauthorized, "no credentials provided", nil)
			c.Abort()
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		Respond(c, http.StatusForbidden, "insufficient permissions", nil)
		c.Abort()
	}
}

// cacheWriter tees the response body so it can be stored after the handler
// runs.
type cacheWriter struct {
	gin.ResponseWriter
	body strings.Builder
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// cached GET responses all live under this key prefix
const responseKeyPrefix = "response:"

// CacheResponse serves GET responses from Redis, keyed by the full request
// URI. Only 200 responses are stored. A nil cache disables the middleware.
func CacheResponse(c *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c == nil || ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := responseKeyPrefix + cache.HashKey(ctx.Request.RequestURI)
		if body, err := c.Get(key); err == nil {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
			ctx.Abort()
			return
		}

		writer := &cacheWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = writer

		ctx.Next()

		if ctx.Writer.Status() == http.StatusOK {
			if err := c.Set(key, writer.body.String(), ttl); err != nil && err != cache.ErrCacheDisabled {
				logging.GetLogger().Warn("Failed to store cached response", zap.Error(err))
			}
		}
	}
}

// InvalidateCache drops all cached GET responses after a successful mutation,
// so lists never serve stale data past the write.
func InvalidateCache(c *cache.Cache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if c == nil || ctx.Writer.Status() < 200 || ctx.Writer.Status() >= 300 {
			return
		}
		if err := c.DeletePrefix(responseKeyPrefix); err != nil && err != cache.ErrCacheDisabled {
			logging.GetLogger().Warn("Failed to invalidate cached responses", zap.Error(err))
		}
	}
}
