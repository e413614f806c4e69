package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/equipstore/pkg/config"
	"github.com/ghuser/equipstore/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func newTestBus(t *testing.T) *EventBus {
	t.Helper()
	bus := NewEventBus(&config.Config{EventBufferSize: 16}, nopLogger())
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

// TestRetryPolicy_SuccessOnFirstAttempt verifies no retry occurs on success.
func TestRetryPolicy_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryPolicy{attempts: maxAttempts, baseDelay: time.Millisecond}.run(context.Background(), msg, handler, nopLogger())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestRetryPolicy_SuccessAfterRetries verifies retry continues until success.
func TestRetryPolicy_SuccessAfterRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient error")
		}
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryPolicy{attempts: maxAttempts, baseDelay: time.Millisecond}.run(context.Background(), msg, handler, nopLogger())
	if err != nil {
		t.Fatalf("expected nil after eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

// TestRetryPolicy_ExhaustsRetries verifies an error is returned after all retries fail.
func TestRetryPolicy_ExhaustsRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("permanent error")
	}
	msg := message.NewMessage("id", nil)
	err := retryPolicy{attempts: maxAttempts, baseDelay: time.Millisecond}.run(context.Background(), msg, handler, nopLogger())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != maxAttempts {
		t.Errorf("expected %d calls, got %d", maxAttempts, calls)
	}
}

// TestRetryPolicy_ContextCancelled verifies retry stops when context is canceled.
func TestRetryPolicy_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("error")
	}
	msg := message.NewMessage("id", nil)
	err := retryPolicy{attempts: maxAttempts, baseDelay: time.Second}.run(ctx, msg, handler, nopLogger())
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
	if calls != 1 {
		t.Errorf("expected 1 call before context cancel, got %d", calls)
	}
}

// TestEventBus_PublishSubscribe verifies a published JSON message reaches the subscriber.
func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *message.Message, 1)
	if _, err := bus.Subscribe(ctx, "equipment.test", func(_ context.Context, msg *message.Message) error {
		received <- msg
		return nil
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := bus.PublishJSON(ctx, "equipment.test", "evt-1", map[string]int{"equipment_id": 4}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}

	select {
	case msg := <-received:
		if string(msg.Payload) != `{"equipment_id":4}` {
			t.Errorf("unexpected payload: %s", msg.Payload)
		}
		if msg.Metadata.Get("event_id") != "evt-1" {
			t.Errorf("unexpected event_id metadata: %q", msg.Metadata.Get("event_id"))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

// TestEventBus_ClosedBus verifies Publish, Subscribe and Ping fail after Close,
// and that Close is idempotent.
func TestEventBus_ClosedBus(t *testing.T) {
	bus := NewEventBus(&config.Config{}, nopLogger())
	if err := bus.Ping(context.Background()); err != nil {
		t.Fatalf("Ping before close: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := bus.Ping(context.Background()); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Ping after close: got %v, want ErrBusClosed", err)
	}
	if err := bus.Publish(context.Background(), "t", message.NewMessage("id", nil)); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Publish after close: got %v, want ErrBusClosed", err)
	}
	if _, err := bus.Subscribe(context.Background(), "t", nil); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Subscribe after close: got %v, want ErrBusClosed", err)
	}
}

// TestOTelPropagation_PublishSubscribe verifies the handler context carries
// the publisher's trace.
func TestOTelPropagation_PublishSubscribe(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	bus := newTestBus(t)
	subCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gotTrace := make(chan trace.TraceID, 1)
	if _, err := bus.Subscribe(subCtx, "equipment.traced", func(ctx context.Context, _ *message.Message) error {
		gotTrace <- trace.SpanContextFromContext(ctx).TraceID()
		return nil
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish-span")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	if err := bus.Publish(ctx, "equipment.traced", message.NewMessage("id", nil)); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case got := <-gotTrace:
		if got != wantTraceID {
			t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

// TestSubscribe_ConsumerSpanMarksFailure verifies each delivery runs in a
// consumer span that records a handler failure.
func TestSubscribe_ConsumerSpanMarksFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh, err := bus.Subscribe(ctx, "equipment.failing", func(context.Context, *message.Message) error {
		return errors.New("store down")
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := bus.Publish(ctx, "equipment.failing", message.NewMessage("m-1", nil)); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-errCh:
	case <-time.After(10 * time.Second):
		t.Fatal("handler error not reported")
	}

	var span sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Name() == "consume equipment.failing" {
			span = s
		}
	}
	if span == nil {
		t.Fatal("consumer span not recorded")
	}
	if span.SpanKind() != trace.SpanKindConsumer {
		t.Errorf("span kind = %v", span.SpanKind())
	}
	if span.Status().Code != codes.Error {
		t.Errorf("span status = %v", span.Status())
	}
}
