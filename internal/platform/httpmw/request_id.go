// Package httpmw holds gin middleware shared by every route.
package httpmw

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-Id"
	CtxRequestID    = "request_id"
)

type requestIDKey struct{}

// RequestID reuses an inbound X-Request-Id or mints one, exposes it on the gin
// and request contexts, echoes it back and logs the completed request.
func RequestID(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(CtxRequestID, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, rid))
		c.Writer.Header().Set(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "request completed",
			slog.String("request.id", rid),
			slog.String("http.method", c.Request.Method),
			slog.String("http.route", c.FullPath()),
			slog.Int("http.status_code", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// RequestIDFrom extracts the id stored by RequestID.
func RequestIDFrom(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
