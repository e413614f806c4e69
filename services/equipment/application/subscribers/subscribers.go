// Package subscribers holds the equipment event handlers run on the in-process
// event bus. Handlers must be idempotent: the bus retries a failing handler up
// to 3 times.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/equipstore/pkg/logger"
	equipmentevents "github.com/ghuser/equipstore/services/equipment/domain/events"
)

// Handler processes one bus message.
type Handler func(context.Context, *message.Message) error

// Subscriber is the subscribe half of events.EventBus.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// Subscribe attaches handler to every topic and drains each subscription's
// error channel into the log so it never blocks.
func Subscribe(ctx context.Context, bus Subscriber, log logger.Logger, name string, handler Handler, topics ...string) error {
	for _, topic := range topics {
		errCh, err := bus.Subscribe(ctx, topic, handler)
		if err != nil {
			return fmt.Errorf("subscribe %s to %s: %w", name, topic, err)
		}
		go func(topic string) {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error",
					"subscriber", name,
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}
	log.Info("event subscriber registered", "subscriber", name, "topics", topics)
	return nil
}

// envelope is the part shared by every equipment event payload.
type envelope struct {
	EventID string                         `json:"event_id"`
	State   equipmentevents.EquipmentState `json:"state"`
}

func decode(msg *message.Message) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		return env, fmt.Errorf("decode equipment event: %w", err)
	}
	if env.EventID == "" {
		env.EventID = msg.Metadata.Get("event_id")
	}
	return env, nil
}
