package streamlatch

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
)

func TestEmitterExportRoundTrip(t *testing.T) {
	e := New[string](Options{})

	e.EmitNext("a")
	e.EmitNext("b")
	e.EmitComplete()

	events, err := e.Stream(0).Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	var values []string
	for ev := range events {
		if ev.Kind == KindNext {
			values = append(values, ev.Value)
		}
	}
	if len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Fatalf("unexpected replay: %v", values)
	}
}

func TestBuiltinSinksAreRegistered(t *testing.T) {
	for _, name := range []string{"channel", "watermill", "nats"} {
		if caps := SinkCapabilitiesFor(name); caps.Name != name {
			t.Fatalf("expected %q to be registered, got %#v", name, caps)
		}
	}
}

func TestNewBoundEmitterValidatesConfig(t *testing.T) {
	_, err := NewBoundEmitter(context.Background(), &Config{SinkSystem: "watermill"}, watermill.NopLogger{})
	var validationErr ConfigValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected config validation error, got %v", err)
	}
}

func TestNewBoundEmitterChannelBackend(t *testing.T) {
	e, err := NewBoundEmitter(context.Background(), &Config{SinkSystem: "channel", ChannelBufferSize: 4}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.Bound() {
		t.Fatal("expected emitter to be bound")
	}

	e.EmitNext([]byte("x"))
	e.EmitComplete()
}

func TestNewBoundEmitterWiresMetricsFromConfig(t *testing.T) {
	cfg := &Config{SinkSystem: "channel", ChannelBufferSize: 4, MetricsEnabled: true}
	e, err := NewBoundEmitter(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Metrics() == nil {
		t.Fatal("expected a metrics collector to be attached")
	}

	e.EmitNext([]byte("x"))
	e.EmitComplete()

	if snap := e.Metrics().GetSnapshot(); snap.EmittedTotal != 2 {
		t.Fatalf("expected 2 emitted events recorded, got %d", snap.EmittedTotal)
	}
}

func TestNewBoundEmitterWithoutMetricsFlag(t *testing.T) {
	e, err := NewBoundEmitter(context.Background(), &Config{SinkSystem: "channel", ChannelBufferSize: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Metrics() != nil {
		t.Fatal("expected no metrics collector without the config flag")
	}
}

func TestEncodingExportAliases(t *testing.T) {
	payload := map[string]string{"hello": "world"}
	if _, err := Marshal(payload); err != nil {
		t.Fatalf("marshal alias failed: %v", err)
	}
	if _, err := MarshalIndent(payload, "", "  "); err != nil {
		t.Fatalf("marshal indent alias failed: %v", err)
	}
	if err := Unmarshal([]byte(`{"hello":"world"}`), &payload); err != nil {
		t.Fatalf("unmarshal alias failed: %v", err)
	}
}

func TestErrorExports(t *testing.T) {
	e := New[string](Options{})
	if err := e.Bind(nil); !errors.Is(err, ErrSinkRequired) {
		t.Fatalf("expected sink required error, got %v", err)
	}
}
