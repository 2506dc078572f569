package errors

import (
	"fmt"
	"testing"

	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/stretchr/testify/assert"
)

func TestShouldReportError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		want       bool
	}{
		{"nil error", nil, 500, false},
		{"not found app error", common.NewNotFoundError("fee not found", nil), 404, false},
		{"conflict wrapped", fmt.Errorf("create fee: %w", common.NewConflictError("duplicate fee")), 409, false},
		{"internal app error", common.NewInternalError("db down", assert.AnError), 500, true},
		{"plain error on 500", assert.AnError, 500, true},
		{"plain error on 400", assert.AnError, 400, false},
		{"plain error on 429", assert.AnError, 429, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldReportError(tt.err, tt.statusCode))
		})
	}
}

func TestDefaultSentryConfig(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("SENTRY_ENVIRONMENT", "")
	t.Setenv("SENTRY_TRACES_SAMPLE_RATE", "")
	t.Setenv("SENTRY_SAMPLE_RATE", "0.5")

	cfg := DefaultSentryConfig("billing-service", "production")

	assert.Equal(t, "billing-service", cfg.ServerName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 0.5, cfg.SampleRate)
	assert.Equal(t, 0.1, cfg.TracesSampleRate)
	assert.Error(t, InitSentry(cfg))
}
