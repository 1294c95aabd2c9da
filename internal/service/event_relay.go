package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/events"
)

// Publisher pushes a serialized event onto a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// EventRelay logs domain events and forwards them to an external channel.
type EventRelay struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	channel    string
	logger     *zap.Logger
}

// NewEventRelay creates the relay. A nil publisher or empty channel limits
// the relay to logging.
func NewEventRelay(dispatcher events.Dispatcher, publisher Publisher, channel string, logger *zap.Logger) *EventRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventRelay{
		dispatcher: dispatcher,
		publisher:  publisher,
		channel:    strings.TrimSpace(channel),
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every event type.
func (r *EventRelay) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	for _, t := range events.AllTypes {
		r.dispatcher.Subscribe(t, r.handle)
	}
	r.logger.Info("event relay started",
		zap.Int("event_types", len(events.AllTypes)),
		zap.Bool("publishing", r.publisher != nil && r.channel != ""),
		zap.String("channel", r.channel))
}

func (r *EventRelay) handle(ctx context.Context, event events.Event) error {
	r.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("user_id", event.UserID),
		zap.String("product_id", event.ProductID))

	if r.publisher == nil || r.channel == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := r.publisher.Publish(ctx, r.channel, body); err != nil {
		r.logger.Warn("relay publish failed", zap.String("channel", r.channel), zap.Error(err))
		return err
	}
	return nil
}
