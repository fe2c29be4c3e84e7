// Package channel provides an in-memory Go channel sink for streamlatch.
// It backs Handle.Subscribe and is useful for testing and local development.
package channel

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/drblury/streamlatch/sink"
)

// SinkName is the name used to register this backend.
const SinkName = "channel"

func init() {
	Register()
}

// Register registers the channel backend with the default registry.
func Register() {
	sink.RegisterWithCapabilities(SinkName, Build, sink.ChannelCapabilities)
}

// Build creates a byte-payload channel sink. The events channel is reachable
// by type-asserting the returned sink to *Sink[[]byte].
func Build(ctx context.Context, cfg sink.Config, logger watermill.LoggerAdapter) (sink.Sink[[]byte], error) {
	return New[[]byte](ctx, cfg.GetChannelBufferSize()), nil
}

// Capabilities returns the capabilities of this backend.
func Capabilities() sink.Capabilities {
	return sink.ChannelCapabilities
}

// Sink delivers accepted events onto a Go channel. The channel is closed
// right after the first terminal event; later calls are ignored, which is the
// sink side of the terminal-then-silence contract. When the context is
// cancelled, pending and future deliveries are discarded instead of blocking
// the producer forever.
type Sink[T any] struct {
	ctx    context.Context
	events chan sink.Event[T]

	mu   sync.Mutex
	done bool
}

// New creates a channel sink. buffer is the capacity of the events channel;
// zero means unbuffered.
func New[T any](ctx context.Context, buffer int) *Sink[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Sink[T]{
		ctx:    ctx,
		events: make(chan sink.Event[T], buffer),
	}
}

// Events returns the receive side of the sink.
func (s *Sink[T]) Events() <-chan sink.Event[T] {
	return s.events
}

func (s *Sink[T]) AcceptNext(value T) {
	s.deliver(sink.Event[T]{Kind: sink.KindNext, Value: value})
}

func (s *Sink[T]) AcceptError(err error) {
	s.deliverTerminal(sink.Event[T]{Kind: sink.KindError, Err: err})
}

func (s *Sink[T]) AcceptComplete() {
	s.deliverTerminal(sink.Event[T]{Kind: sink.KindComplete})
}

// deliver sends a data event. The mutex is held across the channel send so
// concurrent direct-path producers cannot race a terminal close.
func (s *Sink[T]) deliver(ev sink.Event[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}

	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

func (s *Sink[T]) deliverTerminal(ev sink.Event[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true

	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
	close(s.events)
}
