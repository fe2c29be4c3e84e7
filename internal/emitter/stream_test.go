package emitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errspkg "github.com/drblury/streamlatch/internal/errors"
	sinkpkg "github.com/drblury/streamlatch/sink"
)

func collect[T any](t *testing.T, events <-chan sinkpkg.Event[T]) []sinkpkg.Event[T] {
	t.Helper()

	var out []sinkpkg.Event[T]
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("timed out waiting for stream to terminate")
		}
	}
}

func TestSubscribeReplaysBufferedEvents(t *testing.T) {
	e := New[string](Options{})

	e.EmitNext("a")
	e.EmitNext("b")
	e.EmitComplete()

	events, err := e.Stream(0).Subscribe(context.Background())
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 3)
	assert.Equal(t, sinkpkg.KindNext, got[0].Kind)
	assert.Equal(t, "a", got[0].Value)
	assert.Equal(t, "b", got[1].Value)
	assert.Equal(t, sinkpkg.KindComplete, got[2].Kind)
}

func TestSubscribeIsColdUntilCalled(t *testing.T) {
	e := New[string](Options{})
	h := e.Stream(4)

	e.EmitNext("a")
	assert.False(t, e.Bound(), "creating a handle must not bind")
	assert.Equal(t, 1, e.BufferLen())

	events, err := h.Subscribe(context.Background())
	require.NoError(t, err)

	e.EmitComplete()
	got := collect(t, events)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Value)
}

func TestSubscribeThenEmitIsLive(t *testing.T) {
	e := New[string](Options{})

	events, err := e.Stream(4).Subscribe(context.Background())
	require.NoError(t, err)

	e.EmitNext("x")
	e.EmitError(errors.New("boom"))

	got := collect(t, events)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Value)
	assert.Equal(t, sinkpkg.KindError, got[1].Kind)
	assert.EqualError(t, got[1].Err, "boom")
}

func TestSecondSubscribeOnSameHandle(t *testing.T) {
	e := New[string](Options{})
	h := e.Stream(1)

	e.EmitComplete()
	_, err := h.Subscribe(context.Background())
	require.NoError(t, err)

	_, err = h.Subscribe(context.Background())
	assert.ErrorIs(t, err, errspkg.ErrStreamAlreadyConsumed)
}

func TestSubscribeAfterDirectBind(t *testing.T) {
	e := New[string](Options{})
	require.NoError(t, e.Bind(&collectorSink{}))

	_, err := e.Stream(0).Subscribe(context.Background())
	assert.ErrorIs(t, err, errspkg.ErrSinkAlreadyBound)
}

func TestFailedSubscribeDoesNotConsumeHandle(t *testing.T) {
	e := New[string](Options{})
	require.NoError(t, e.Bind(&collectorSink{}))

	h := e.Stream(0)
	_, err := h.Subscribe(context.Background())
	require.ErrorIs(t, err, errspkg.ErrSinkAlreadyBound)

	// A retry must keep reporting the bind failure, not a consumed handle.
	_, err = h.Subscribe(context.Background())
	assert.ErrorIs(t, err, errspkg.ErrSinkAlreadyBound)
}

func TestCancelledSubscriberDoesNotBlockProducers(t *testing.T) {
	e := New[string](Options{})
	ctx, cancel := context.WithCancel(context.Background())

	_, err := e.Stream(0).Subscribe(ctx)
	require.NoError(t, err)
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			e.EmitNext("discarded")
		}
		e.EmitComplete()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer blocked after subscriber cancellation")
	}
}

func TestUnbufferedSubscribeDrainsLargeBacklog(t *testing.T) {
	e := New[int](Options{})

	const backlog = 500
	for i := 0; i < backlog; i++ {
		e.EmitNext(i)
	}
	e.EmitComplete()

	events, err := e.Stream(0).Subscribe(context.Background())
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, backlog+1)
	for i := 0; i < backlog; i++ {
		assert.Equal(t, i, got[i].Value)
	}
	assert.Equal(t, sinkpkg.KindComplete, got[backlog].Kind)
}
