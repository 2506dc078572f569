package common_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadinessProbe(t *testing.T) {
	tests := []struct {
		name         string
		checks       map[string]func() error
		expectStatus int
		expectState  string
	}{
		{
			name:         "all dependencies healthy",
			checks:       map[string]func() error{"database": func() error { return nil }},
			expectStatus: http.StatusOK,
			expectState:  "ready",
		},
		{
			name: "one dependency down",
			checks: map[string]func() error{
				"database": func() error { return nil },
				"redis":    func() error { return errors.New("connection refused") },
			},
			expectStatus: http.StatusServiceUnavailable,
			expectState:  "not ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health/ready", common.ReadinessProbe("billing-service", "1.0.0", tt.checks))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.expectStatus, w.Code)

			var body common.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectState, body.Status)
			assert.Len(t, body.Checks, len(tt.checks))
		})
	}
}

func TestLivenessProbe(t *testing.T) {
	router := gin.New()
	router.GET("/health/live", common.LivenessProbe("analytics-service", "1.0.0"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"alive"`)
}
