package async

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/richxcame/booking-platform/pkg/logger"
	"go.uber.org/zap"
)

// TaskContext holds the request values carried into a background task
type TaskContext struct {
	CorrelationID string
	StartTime     time.Time
	TaskName      string
}

// CaptureContext captures the current context values for async propagation
func CaptureContext(ctx context.Context, taskName string) TaskContext {
	return TaskContext{
		CorrelationID: logger.CorrelationIDFromContext(ctx),
		StartTime:     time.Now(),
		TaskName:      taskName,
	}
}

// NewContext creates a detached context carrying the captured values
func (tc TaskContext) NewContext() context.Context {
	ctx := context.Background()
	if tc.CorrelationID != "" {
		ctx = logger.ContextWithCorrelationID(ctx, tc.CorrelationID)
	}
	return ctx
}

// NewContextWithTimeout creates a new context with timeout and captured values
func (tc TaskContext) NewContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(tc.NewContext(), timeout)
}

// GoWithTimeout runs fn in a goroutine that outlives the request. The task
// keeps the caller's correlation ID, is bounded by timeout and has its panics
// recovered and logged.
func GoWithTimeout(ctx context.Context, taskName string, timeout time.Duration, fn func(ctx context.Context)) {
	tc := CaptureContext(ctx, taskName)

	go func() {
		defer recoverWithLogging(tc)

		taskCtx, cancel := tc.NewContextWithTimeout(timeout)
		defer cancel()

		fn(taskCtx)

		if taskCtx.Err() == context.DeadlineExceeded {
			logger.WarnContext(taskCtx, "async task timed out",
				zap.String("task", tc.TaskName),
				zap.Duration("timeout", timeout),
			)
		}
	}()
}

func recoverWithLogging(tc TaskContext) {
	if r := recover(); r != nil {
		logger.ErrorContext(tc.NewContext(), "panic in async task",
			zap.String("task", tc.TaskName),
			zap.Any("panic", r),
			zap.Duration("elapsed", time.Since(tc.StartTime)),
			zap.String("stack", string(debug.Stack())),
		)
	}
}
