// Package sink defines the push-consumer contract used by streamlatch
// emitters and a registry of pluggable sink backends. Backends register
// themselves under a name and are selected through Config, in the same way an
// application selects a message transport.
package sink

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
)

// Sink is the downstream consumer's push interface. Delivery is sequential
// per emitter session; after the sink has observed its own terminal signal it
// must ignore further calls (terminal-then-silence is the sink's contract,
// not the emitter's).
type Sink[T any] interface {
	// AcceptNext delivers one value. It may block; backpressure is the
	// sink's concern.
	AcceptNext(value T)
	// AcceptError delivers a terminal error signal.
	AcceptError(err error)
	// AcceptComplete delivers a terminal completion signal.
	AcceptComplete()
}

// EventKind tags one deferred or delivered action.
type EventKind uint8

const (
	KindNext EventKind = iota
	KindError
	KindComplete
)

// String returns the lower-case kind name used in logs and metrics labels.
func (k EventKind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether the kind ends the stream.
func (k EventKind) Terminal() bool {
	return k == KindError || k == KindComplete
}

// Event is one delivered action as observed by a subscriber. Value is only
// meaningful for KindNext, Err only for KindError.
type Event[T any] struct {
	Kind  EventKind
	Value T
	Err   error
}

// Config is the read-only configuration surface sink builders consume.
// *config.Config implements it.
type Config interface {
	GetSinkSystem() string
	GetChannelBufferSize() int
	GetTopic() string
	GetNATSURL() string
	GetNATSSubject() string
}

// Builder constructs a byte-payload sink backend. Typed values are adapted
// onto byte sinks with NewEncodedSink.
type Builder func(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (Sink[[]byte], error)
