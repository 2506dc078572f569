package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxLoggedPayload = 512

// quietPaths are probed constantly and only logged when they fail.
var quietPaths = map[string]bool{
	"/healthz":      true,
	"/health/live":  true,
	"/health/ready": true,
	"/metrics":      true,
}

type bodyTee struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (t *bodyTee) Write(b []byte) (int, error) {
	t.buf.Write(b)
	return t.ResponseWriter.Write(b)
}

func (t *bodyTee) WriteString(s string) (int, error) {
	t.buf.WriteString(s)
	return t.ResponseWriter.WriteString(s)
}

// RequestLogger writes one entry per request with a compacted, truncated
// copy of both bodies. 5xx responses log at error level and 4xx at warn.
func RequestLogger(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqBody := readBody(c)
		tee := &bodyTee{ResponseWriter: c.Writer}
		c.Writer = tee

		c.Next()

		status := c.Writer.Status()
		level := levelFor(status, len(c.Errors) > 0)
		if quietPaths[c.Request.URL.Path] && level == zapcore.InfoLevel {
			return
		}

		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("response_size", tee.buf.Len()),
		}
		if reqBody != "" {
			fields = append(fields, zap.String("request_body", reqBody))
		}
		if respBody := compactPayload(tee.buf.Bytes()); respBody != "" {
			fields = append(fields, zap.String("response_body", respBody))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if ce := logger.WithContext(c.Request.Context()).Check(level, "request completed"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func levelFor(status int, hasErrors bool) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError || hasErrors:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// readBody returns the compacted request body and rewinds it for handlers.
func readBody(c *gin.Context) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	return compactPayload(raw)
}

func compactPayload(payload []byte) string {
	out := strings.Join(strings.Fields(string(payload)), " ")
	if len(out) > maxLoggedPayload {
		out = out[:maxLoggedPayload] + "...(truncated)"
	}
	return out
}
