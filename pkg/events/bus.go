// Package events is the in-process event bus the equipment registry publishes
// to. It runs on Watermill's gochannel transport: every subscriber of a topic
// gets every message, and nothing survives a restart.
//
// Trace context travels in message metadata, and each delivery runs inside a
// consumer span that joins the publisher's trace.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/equipstore/pkg/config"
	"github.com/ghuser/equipstore/pkg/logger"
)

const (
	maxAttempts     = 3
	retryBaseDelay  = time.Second
	errBufferSize   = 100
	shutdownTimeout = 30 * time.Second
	tracerName      = "github.com/ghuser/equipstore/pkg/events"
)

// ErrBusClosed is returned by Publish, Subscribe and Ping after Close.
var ErrBusClosed = errors.New("events: bus closed")

// EventBus is an in-memory pub/sub EventBus built on Watermill's gochannel transport.
type EventBus struct {
	pubsub *gochannel.GoChannel
	log    logger.Logger
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewEventBus creates an EventBus whose per-subscriber output channels are
// buffered to cfg.EventBufferSize messages.
func NewEventBus(cfg *config.Config, log logger.Logger) *EventBus {
	buffer := cfg.EventBufferSize
	if buffer < 0 {
		buffer = 0
	}
	wmLog := watermill.NewSlogLogger(log.ToSlog().With("component", "watermill"))
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(buffer),
	}, wmLog)

	return &EventBus{pubsub: pubsub, log: log}
}

// Publish sends one or more messages to the given topic.
// OTel trace context from ctx is injected into each message's metadata so
// the receiving subscriber can restore the trace and continue the span tree.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	if q.closed.Load() {
		return ErrBusClosed
	}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
	if err := q.pubsub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// PublishJSON marshals payload into a new message and publishes it to topic.
// eventID is copied into the "event_id" metadata key for deduplication.
func (q *EventBus) PublishJSON(ctx context.Context, topic, eventID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("events: marshal %s payload: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("event_id", eventID)
	msg.Metadata.Set("event_version", "1")
	return q.Publish(ctx, topic, msg)
}

// Subscribe runs handler for every message on topic until ctx is done or the
// bus is closed. A handler error is retried (maxAttempts tries, 1s then 2s
// apart); when the last attempt fails the error is sent to the returned
// channel and the message is acked anyway, since gochannel would otherwise
// redeliver it forever.
//
// The error channel is buffered and must be drained by the caller. Close
// waits for in-flight handlers.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	if q.closed.Load() {
		return nil, ErrBusClosed
	}
	ch, err := q.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBufferSize)
	policy := retryPolicy{attempts: maxAttempts, baseDelay: retryBaseDelay}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)
		for msg := range ch {
			if err := q.deliver(ctx, topic, msg, handler, policy); err != nil {
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(ctx, "events: error channel full, dropping error",
						"error", err, "topic", topic)
				}
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

// deliver restores the publisher's trace and runs handler in a consumer span.
func (q *EventBus) deliver(
	ctx context.Context,
	topic string,
	msg *message.Message,
	handler func(context.Context, *message.Message) error,
	policy retryPolicy,
) error {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
	ctx, span := otel.Tracer(tracerName).Start(ctx, "consume "+topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "watermill"),
			attribute.String("messaging.destination.name", topic),
			attribute.String("messaging.message.id", msg.UUID),
		),
	)
	defer span.End()

	err := policy.run(ctx, msg, handler, q.log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
	}
	return err
}

type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

// run calls handler until it succeeds or the attempts are used up, doubling
// the delay after each failure. It gives up early when ctx is done.
func (p retryPolicy) run(
	ctx context.Context,
	msg *message.Message,
	handler func(context.Context, *message.Message) error,
	log logger.Logger,
) error {
	delay := p.baseDelay
	for attempt := 1; ; attempt++ {
		err := handler(ctx, msg)
		if err == nil {
			return nil
		}
		if attempt >= p.attempts {
			return fmt.Errorf("events: handler failed after %d attempts: %w", attempt, err)
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt,
			"max_attempts", p.attempts,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// Ping reports whether the bus still accepts messages.
func (q *EventBus) Ping(_ context.Context) error {
	if q.closed.Load() {
		return ErrBusClosed
	}
	return nil
}

// Close gracefully shuts down the EventBus.
// Shutdown order: close transport (ends subscriptions) → wait for in-flight
// handlers (30 s max). Calling Close twice is a no-op.
func (q *EventBus) Close() error {
	if !q.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := q.pubsub.Close(); err != nil {
		return fmt.Errorf("events: close transport: %w", err)
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	select {
	case <-done:
	case <-ctx.Done():
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}
	return nil
}
