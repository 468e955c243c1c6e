// File: internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// New 依設定建立 zerolog logger
// format 為 "pretty" 時輸出人類可讀格式，其餘一律 JSON
func New(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if format == "pretty" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// RequestLogger 記錄每個請求的方法、路徑、狀態碼與耗時
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			ev := logger.Info()
			if res.Status >= 500 {
				ev = logger.Error().Err(err)
			}
			ev.Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", c.Path()).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Msg("request")
			return nil
		}
	}
}
