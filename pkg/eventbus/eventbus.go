package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/richxcame/booking-platform/pkg/logger"
	"go.uber.org/zap"
)

// Subjects for booking platform events.
const (
	SubjectFeeCreated       = "billing.fees.created"
	SubjectFeePaid          = "billing.fees.paid"
	SubjectPaymentRecorded  = "billing.payments.recorded"
	SubjectSettingsUpdated  = "settings.updated"
	SubjectPartnershipAdded = "partnerships.accepted"

	// SubjectBillingAll matches every billing subject.
	SubjectBillingAll = "billing.>"
)

// DefaultStreamName is used when Config.StreamName is empty.
const DefaultStreamName = "BOOKING"

// StreamSubjects lists the subject filters captured by the stream.
var StreamSubjects = []string{"billing.>", "settings.>", "partnerships.>"}

// Event is the envelope for all events published through the bus.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewEvent creates a new event with a unique ID and current timestamp.
func NewEvent(eventType, source string, data interface{}) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal event data: %w", err)
	}
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}, nil
}

// HandlerFunc processes a received event. Return nil to ack, error to nack.
type HandlerFunc func(ctx context.Context, event *Event) error

// Config holds NATS connection settings.
type Config struct {
	URL        string
	Name       string // client connection name
	StreamName string // JetStream stream name (default: "BOOKING")
}

func (c Config) stream() string {
	if c.StreamName == "" {
		return DefaultStreamName
	}
	return c.StreamName
}

// DefaultConfig returns sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		URL:        nats.DefaultURL,
		Name:       "booking-platform",
		StreamName: DefaultStreamName,
	}
}

// Bus publishes and consumes events over a NATS JetStream stream.
type Bus struct {
	conn *nats.Conn
	js   jetstream.JetStream
	cfg  Config
	subs []jetstream.ConsumeContext
}

// New connects to NATS and creates or updates the booking stream.
func New(cfg Config) (*Bus, error) {
	nc, err := nats.Connect(cfg.URL, connectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	bus, err := newBus(nc, cfg)
	if err != nil {
		nc.Close()
		return nil, err
	}

	logger.Info("event bus ready", zap.String("url", cfg.URL), zap.String("stream", cfg.stream()))
	return bus, nil
}

func newBus(nc *nats.Conn, cfg Config) (*Bus, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := js.CreateOrUpdateStream(ctx, streamConfig(cfg.stream())); err != nil {
		return nil, fmt.Errorf("create stream %s: %w", cfg.stream(), err)
	}

	return &Bus{conn: nc, js: js, cfg: cfg}, nil
}

func connectOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.Name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("event bus disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("event bus reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}
}

// streamConfig keeps billing and configuration events for three days or
// until every consumer has acknowledged them.
func streamConfig(name string) jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:      name,
		Subjects:  StreamSubjects,
		Storage:   jetstream.FileStorage,
		Retention: jetstream.InterestPolicy,
		MaxAge:    72 * time.Hour,
		Replicas:  1,
	}
}

func consumerConfig(subject, name string) jetstream.ConsumerConfig {
	return jetstream.ConsumerConfig{
		Name:          name,
		Durable:       name,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       30 * time.Second,
		MaxDeliver:    5,
		DeliverPolicy: jetstream.DeliverNewPolicy,
	}
}

// Publish sends event to subject. The event ID doubles as the JetStream
// message ID so duplicate publishes are dropped by the server.
func (b *Bus) Publish(ctx context.Context, subject string, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := b.js.Publish(ctx, subject, payload, jetstream.WithMsgID(event.ID)); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	logger.Debug("event published", zap.String("subject", subject), zap.String("type", event.Type), zap.String("event_id", event.ID))
	return nil
}

// Subscribe attaches handler to a durable consumer named consumerName.
// Names must be unique per subscribing service, e.g. "analytics-billing".
func (b *Bus) Subscribe(ctx context.Context, subject, consumerName string, handler HandlerFunc) error {
	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.cfg.stream(), consumerConfig(subject, consumerName))
	if err != nil {
		return fmt.Errorf("create consumer %s: %w", consumerName, err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		settle(msg, deliver(ctx, msg.Data(), handler))
	})
	if err != nil {
		return fmt.Errorf("consume %s: %w", consumerName, err)
	}

	b.subs = append(b.subs, cc)
	logger.Info("event consumer started", zap.String("subject", subject), zap.String("consumer", consumerName))
	return nil
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

// deliver decodes payload and runs handler on it. Undecodable payloads are
// dropped; handler errors ask for redelivery.
func deliver(ctx context.Context, payload []byte, handler HandlerFunc) outcome {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		logger.Warn("dropping undecodable event", zap.Error(err))
		return outcomeDrop
	}
	if err := handler(ctx, &event); err != nil {
		logger.Warn("event handler failed",
			zap.String("event_id", event.ID),
			zap.String("type", event.Type),
			zap.Error(err),
		)
		return outcomeRetry
	}
	return outcomeAck
}

func settle(msg jetstream.Msg, o outcome) {
	var err error
	switch o {
	case outcomeAck:
		err = msg.Ack()
	case outcomeRetry:
		err = msg.Nak()
	case outcomeDrop:
		err = msg.Term()
	}
	if err != nil {
		logger.Warn("failed to settle event", zap.Error(err))
	}
}

// Close stops every consumer and drains the connection.
func (b *Bus) Close() {
	for _, sub := range b.subs {
		sub.Stop()
	}
	if b.conn != nil {
		if err := b.conn.Drain(); err != nil {
			logger.Warn("event bus drain failed", zap.Error(err))
		}
	}
	logger.Info("event bus closed")
}

// Connected reports whether the NATS connection is up.
func (b *Bus) Connected() bool {
	return b != nil && b.conn != nil && b.conn.IsConnected()
}

// Ping backs the readiness check.
func (b *Bus) Ping() error {
	if !b.Connected() {
		return fmt.Errorf("nats not connected")
	}
	return nil
}
