package settings

import (
	"context"
	"strings"
	"time"

	"github.com/richxcame/booking-platform/pkg/async"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/eventbus"
	"github.com/richxcame/booking-platform/pkg/logger"
	"github.com/richxcame/booking-platform/pkg/resilience"
	"go.uber.org/zap"
)

const (
	eventSource    = "settings-service"
	publishTimeout = 5 * time.Second
)

// Service reads and writes platform configuration
type Service struct {
	repo     RepositoryInterface
	breaker  *resilience.CircuitBreaker
	eventBus eventbus.Publisher
}

// NewService creates a settings service. Snapshot reads go through breaker,
// which may be nil.
func NewService(repo RepositoryInterface, breaker *resilience.CircuitBreaker) *Service {
	return &Service{repo: repo, breaker: breaker}
}

// NewReadBreaker builds the breaker used for snapshot reads. While it is open
// every read answers with an empty snapshot.
func NewReadBreaker(settings resilience.Settings) *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker(settings, resilience.StaticFallback(map[string]string{}))
}

// SetEventBus sets the event bus for publishing settings events
func (s *Service) SetEventBus(bus eventbus.Publisher) {
	s.eventBus = bus
}

// Snapshot reads keys in one round trip. When the store cannot be read the
// failure is logged and an empty snapshot is returned, so callers fall back
// to their defaults.
func (s *Service) Snapshot(ctx context.Context, keys ...string) Snapshot {
	result, err := s.breaker.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return s.repo.GetMany(ctx, keys)
	})
	if err != nil {
		logger.WarnContext(ctx, "configuration unavailable, using defaults",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
		return Snapshot{}
	}

	values, _ := result.(map[string]string)
	return NewSnapshot(values)
}

// Get returns a single entry
func (s *Service) Get(ctx context.Context, key string) (*ConfigEntry, error) {
	return s.repo.Get(ctx, key)
}

// List returns every stored entry
func (s *Service) List(ctx context.Context) ([]*ConfigEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, common.NewInternalError("failed to list configs", err)
	}
	if entries == nil {
		entries = []*ConfigEntry{}
	}
	return entries, nil
}

// Set upserts a value. Known keys are checked against their kind; other keys
// are stored as given.
func (s *Service) Set(ctx context.Context, key, value, description, updatedBy string) (*ConfigEntry, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, common.NewValidationError("config key is required")
	}
	if kind, ok := KnownKeys[key]; ok {
		if err := validateValue(kind, value); err != nil {
			return nil, err
		}
	}
	if updatedBy == "" {
		updatedBy = "system"
	}

	entry := &ConfigEntry{
		Key:         key,
		Value:       strings.TrimSpace(value),
		Description: description,
		UpdatedBy:   updatedBy,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, common.NewInternalError("failed to save config", err)
	}

	logger.InfoContext(ctx, "config updated",
		zap.String("key", entry.Key),
		zap.String("updated_by", entry.UpdatedBy),
	)

	s.publishEvent(ctx, eventbus.SubjectSettingsUpdated, eventbus.TypeSettingsUpdated, eventbus.SettingsUpdatedData{
		Key:       entry.Key,
		Value:     entry.Value,
		UpdatedBy: entry.UpdatedBy,
		UpdatedAt: entry.UpdatedAt,
	})

	return entry, nil
}

// publishEvent publishes an event in the background, keeping the
// request's correlation ID
func (s *Service) publishEvent(ctx context.Context, subject, eventType string, data interface{}) {
	if s.eventBus == nil {
		return
	}
	evt, err := eventbus.NewEvent(eventType, eventSource, data)
	if err != nil {
		logger.WarnContext(ctx, "failed to create settings event", zap.String("type", eventType), zap.Error(err))
		return
	}
	async.GoWithTimeout(ctx, "publish-"+eventType, publishTimeout, func(ctx context.Context) {
		if err := s.eventBus.Publish(ctx, subject, evt); err != nil {
			logger.WarnContext(ctx, "failed to publish settings event", zap.String("type", eventType), zap.Error(err))
		}
	})
}

func errInvalidValue(kind ValueKind) error {
	switch kind {
	case KindPercentage:
		return common.NewValidationError("value must be a number between 0 and 100")
	case KindFeePercentage:
		return common.NewValidationError("value must be a number between 0 and 50")
	case KindAmount:
		return common.NewValidationError("value must be a non-negative number")
	default:
		return common.NewValidationError("value must be true or false")
	}
}
