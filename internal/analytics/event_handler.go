package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/richxcame/booking-platform/pkg/eventbus"
	"github.com/richxcame/booking-platform/pkg/logger"
	"go.uber.org/zap"
)

const billingConsumer = "analytics-billing"

// Subscriber is the consuming half of eventbus.Bus
type Subscriber interface {
	Subscribe(ctx context.Context, subject, consumerName string, handler eventbus.HandlerFunc) error
}

var _ Subscriber = (*eventbus.Bus)(nil)

// EventHandler turns billing events into running Prometheus totals.
type EventHandler struct{}

// NewEventHandler creates a billing event handler.
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// RegisterSubscriptions subscribes to every billing subject on the bus.
func (h *EventHandler) RegisterSubscriptions(ctx context.Context, bus Subscriber) error {
	if err := bus.Subscribe(ctx, eventbus.SubjectBillingAll, billingConsumer, h.Handle); err != nil {
		return fmt.Errorf("subscribe to %s: %w", eventbus.SubjectBillingAll, err)
	}
	logger.Info("analytics: subscribed to billing events")
	return nil
}

// Handle records one billing event. Unknown types are acked and skipped.
func (h *EventHandler) Handle(ctx context.Context, event *eventbus.Event) error {
	switch event.Type {
	case eventbus.TypeFeeCreated:
		var data eventbus.FeeCreatedData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return fmt.Errorf("unmarshal fee created: %w", err)
		}
		feeAmountTotal.WithLabelValues("created").Add(nonNegative(data.PlatformFee))

	case eventbus.TypeFeePaid:
		var data eventbus.FeePaidData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return fmt.Errorf("unmarshal fee paid: %w", err)
		}
		feeAmountTotal.WithLabelValues("paid").Add(nonNegative(data.PlatformFee))

	case eventbus.TypePaymentRecorded:
		var data eventbus.PaymentRecordedData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return fmt.Errorf("unmarshal payment recorded: %w", err)
		}
		settledRevenueTotal.WithLabelValues(data.ServiceType).Add(nonNegative(data.Amount))
		feeAmountTotal.WithLabelValues("settled").Add(nonNegative(data.PlatformFee))

	default:
		logger.Debug("analytics: ignoring event", zap.String("type", event.Type))
		return nil
	}

	billingEventsTotal.WithLabelValues(event.Type).Inc()
	return nil
}

// nonNegative guards counters, which panic on negative increments.
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
