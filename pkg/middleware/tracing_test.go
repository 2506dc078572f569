package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	r := gin.New()
	r.Use(TracingMiddleware("billing-service"))
	r.GET("/api/v1/billing/providers/:id/pending-fees", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.POST("/api/v1/billing/fees", func(c *gin.Context) {
		c.Status(http.StatusConflict)
	})

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/billing/providers/42/pending-fees", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(TraceIDHeader))

		spans := recorder.Ended()
		require.NotEmpty(t, spans)
		span := spans[len(spans)-1]
		assert.Equal(t, "GET /api/v1/billing/providers/:id/pending-fees", span.Name())
		assert.Equal(t, codes.Ok, span.Status().Code)
	})

	t.Run("client error marks span", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/billing/fees", nil))

		require.Equal(t, http.StatusConflict, w.Code)
		spans := recorder.Ended()
		span := spans[len(spans)-1]
		assert.Equal(t, "POST /api/v1/billing/fees", span.Name())
		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "Conflict", span.Status().Description)
	})
}
