package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opentransit/editor-backend/utils"
)

// RequestLogging writes one line per request using the logger carried by the
// request context. The authentication middlewares enrich that logger, so the
// line picks up the principal email or worker id when the request got past
// them.
func RequestLogging(ignorePaths ...string) gin.HandlerFunc {
	ignore := make(map[string]struct{}, len(ignorePaths))
	for _, path := range ignorePaths {
		ignore[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := ignore[c.Request.URL.Path]; ok {
			return
		}

		path := c.Request.URL.Path
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		attributes := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.String("client_ip", c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			attributes = append(attributes, slog.String("error", c.Errors.String()))
		}

		// c.Request may have been swapped for one with an enriched context by
		// a later middleware, read it after the handlers ran.
		ctx := c.Request.Context()
		utils.LoggerFromContext(ctx).LogAttrs(ctx, level,
			fmt.Sprintf("%s %s", c.Request.Method, path), attributes...)
	}
}
