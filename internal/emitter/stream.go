package emitter

import (
	"context"
	"sync/atomic"

	errspkg "github.com/drblury/streamlatch/internal/errors"
	sinkpkg "github.com/drblury/streamlatch/sink"
	"github.com/drblury/streamlatch/sink/channel"
)

// Handle is a cold stream factory. Nothing happens until Subscribe is called;
// subscribing is precisely what binds a sink to the emitter and flushes the
// pending buffer. A handle supports exactly one subscription.
type Handle[T any] struct {
	emitter *Emitter[T]
	buffer  int
	claimed atomic.Bool
}

// Stream returns a cold stream handle for this emitter. buffer is the
// capacity of the channel handed to the subscriber; zero means unbuffered.
func (e *Emitter[T]) Stream(buffer int) *Handle[T] {
	return &Handle[T]{emitter: e, buffer: buffer}
}

// Subscribe activates the stream: it creates a channel sink, binds it, and
// returns the event channel. Buffered events are replayed onto the channel
// before any later emission; the channel closes after the terminal event.
// Cancelling ctx makes the sink discard deliveries instead of blocking
// producers.
//
// A second Subscribe on the same handle returns ErrStreamAlreadyConsumed. If
// another sink was bound to the emitter directly, Bind's single-bind rule
// applies and ErrSinkAlreadyBound is returned.
func (h *Handle[T]) Subscribe(ctx context.Context) (<-chan sinkpkg.Event[T], error) {
	if !h.claimed.CompareAndSwap(false, true) {
		return nil, errspkg.ErrStreamAlreadyConsumed
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cs := channel.New[T](ctx, h.buffer)
	if err := h.emitter.reserve(cs); err != nil {
		// The handle was never activated; keep it retryable so callers see
		// the bind failure, not a bogus consumed-handle error.
		h.claimed.Store(false)
		return nil, err
	}

	// Replay happens off the subscriber's goroutine so an unbuffered channel
	// can be drained by the caller as soon as Subscribe returns.
	go h.emitter.flush(ctx, cs)

	return cs.Events(), nil
}
