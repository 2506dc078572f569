package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, levelFor(http.StatusCreated, false))
	assert.Equal(t, zapcore.WarnLevel, levelFor(http.StatusConflict, false))
	assert.Equal(t, zapcore.ErrorLevel, levelFor(http.StatusBadGateway, false))
	assert.Equal(t, zapcore.ErrorLevel, levelFor(http.StatusOK, true))
}

func TestCompactPayload(t *testing.T) {
	assert.Equal(t, "", compactPayload(nil))
	assert.Equal(t, `{"amount": 1000, "type": "hotel"}`, compactPayload([]byte("{\"amount\": 1000,\n\t\"type\": \"hotel\"}")))

	long := compactPayload([]byte(strings.Repeat("x", maxLoggedPayload+10)))
	assert.True(t, strings.HasSuffix(long, "...(truncated)"))
	assert.Len(t, long, maxLoggedPayload+len("...(truncated)"))
}

func TestRequestLoggerRewindsBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger("billing-service"))

	var got string
	r.POST("/api/v1/billing/calculate", func(c *gin.Context) {
		b, _ := c.GetRawData()
		got = string(b)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/billing/calculate", strings.NewReader(`{"amount":1000}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"amount":1000}`, got)
}
