// Package emitter implements the deferred event-emission bridge at the heart
// of streamlatch. Producers push values, errors, and completion into an
// Emitter from any goroutine, possibly before a consumer exists; the emitter
// buffers everything until a sink binds, then replays in order and forwards
// directly from that point on.
package emitter

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	errspkg "github.com/drblury/streamlatch/internal/errors"
	idspkg "github.com/drblury/streamlatch/internal/ids"
	"github.com/drblury/streamlatch/internal/jsoncodec"
	loggingpkg "github.com/drblury/streamlatch/internal/logging"
	metricspkg "github.com/drblury/streamlatch/internal/metrics"
	sinkpkg "github.com/drblury/streamlatch/sink"
)

const tracerName = "streamlatch-emitter"

// action is one deferred call, stored as data only. The sink reference is
// resolved at replay time, never captured when the action is recorded.
type action[T any] struct {
	kind  sinkpkg.EventKind
	value T
	err   error
}

func (a action[T]) deliver(s sinkpkg.Sink[T]) {
	switch a.kind {
	case sinkpkg.KindNext:
		s.AcceptNext(a.value)
	case sinkpkg.KindError:
		s.AcceptError(a.err)
	case sinkpkg.KindComplete:
		s.AcceptComplete()
	}
}

// Options configures a new Emitter. The zero value is usable: no logger, no
// metrics, no drop-context capture.
type Options struct {
	// Logger receives drop diagnostics and lifecycle debug lines. Nil
	// disables logging.
	Logger loggingpkg.Logger

	// Metrics, when non-nil, records emission counters for the session.
	Metrics *metricspkg.EmitterMetrics

	// CaptureDropContexts enables call-context snapshots at bind time and
	// terminal-emit time so dropped events can be explained.
	CaptureDropContexts bool

	// SessionID tags log lines and traces. Defaults to a fresh ULID.
	SessionID string
}

// Emitter is a single-session bridge between an imperative producer and a
// lazily-activated push stream. One sink may bind exactly once per instance;
// the instance is discarded after the terminal event is delivered.
//
// All methods are safe for concurrent use. State is only touched inside one
// short critical section per call; delivery to a bound sink always happens
// outside it, so a slow consumer never holds up the emitter's lock.
type Emitter[T any] struct {
	mu      sync.Mutex
	sink    sinkpkg.Sink[T]
	binding bool
	buffer  []action[T]

	// terminalSeen is set on the first EmitError/EmitComplete regardless of
	// diagnostics, so introspection does not depend on the capture flag.
	terminalSeen bool

	capture           bool
	bindContext       string
	completionContext string

	logger    loggingpkg.Logger
	metrics   *metricspkg.EmitterMetrics
	sessionID string
}

// New creates an emitter for one stream session.
func New[T any](opts Options) *Emitter[T] {
	logger := opts.Logger
	if logger == nil {
		logger = loggingpkg.Nop()
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = idspkg.NewSessionID()
	}

	return &Emitter[T]{
		capture:   opts.CaptureDropContexts,
		logger:    logger.With(loggingpkg.Fields{"session_id": sessionID}),
		metrics:   opts.Metrics,
		sessionID: sessionID,
	}
}

// SessionID returns the identifier tagging this session's logs and traces.
func (e *Emitter[T]) SessionID() string {
	return e.sessionID
}

// Metrics returns the collector recording this session, or nil when metrics
// were not configured.
func (e *Emitter[T]) Metrics() *metricspkg.EmitterMetrics {
	return e.metrics
}

// Bind attaches the sink, replays every buffered action against it in the
// order the actions were issued, and switches the emitter to direct
// forwarding. It is the only way buffered actions are flushed. A second call
// returns ErrSinkAlreadyBound; buffered actions are never replayed twice.
func (e *Emitter[T]) Bind(s sinkpkg.Sink[T]) error {
	return e.BindContext(context.Background(), s)
}

// BindContext is Bind with the caller's context, used to parent the
// bind/flush trace span.
func (e *Emitter[T]) BindContext(ctx context.Context, s sinkpkg.Sink[T]) error {
	if err := e.reserve(s); err != nil {
		return err
	}
	e.flush(ctx, s)
	return nil
}

// reserve claims the one bind slot for s without delivering anything. A
// successful reserve must be followed by flush.
func (e *Emitter[T]) reserve(s sinkpkg.Sink[T]) error {
	if s == nil {
		return errspkg.ErrSinkRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sink != nil || e.binding {
		return errspkg.ErrSinkAlreadyBound
	}
	e.binding = true
	if e.capture {
		e.bindContext = callContext()
	}
	return nil
}

// flush replays the pending buffer against s and then publishes the sink
// pointer, switching the emitter to direct forwarding.
func (e *Emitter[T]) flush(ctx context.Context, s sinkpkg.Sink[T]) {
	_, span := otel.Tracer(tracerName).Start(ctx, "BindSink",
		trace.WithAttributes(attribute.String("emitter.session_id", e.sessionID)))
	defer span.End()

	// Drain in batches, delivering outside the lock. Emits racing the flush
	// still land in the buffer (the sink pointer is not published yet), so
	// issuance order survives and nothing is delivered before its turn.
	start := time.Now()
	flushed := 0
	e.mu.Lock()
	for len(e.buffer) > 0 {
		batch := e.buffer
		e.buffer = nil
		e.mu.Unlock()

		for _, a := range batch {
			a.deliver(s)
		}
		flushed += len(batch)

		e.mu.Lock()
	}
	e.sink = s
	e.binding = false
	e.mu.Unlock()

	span.SetAttributes(attribute.Int("emitter.flushed_actions", flushed))
	e.metrics.RecordFlush(flushed, time.Since(start))
	e.logger.Debug("sink bound", loggingpkg.Fields{"flushed_actions": flushed})
}

// EmitNext pushes one value. Bound: forwarded synchronously. Unbound:
// appended to the pending buffer. Never fails; buffer growth is unbounded by
// design since sessions are short-lived.
func (e *Emitter[T]) EmitNext(value T) {
	e.mu.Lock()
	e.warnIfDroppedLocked(value)
	if e.sink == nil {
		e.buffer = append(e.buffer, action[T]{kind: sinkpkg.KindNext, value: value})
		e.metrics.RecordEmit("next", true)
		e.metrics.RecordBufferLen(len(e.buffer))
		e.mu.Unlock()
		return
	}
	target := e.sink
	e.mu.Unlock()

	e.metrics.RecordEmit("next", false)
	target.AcceptNext(value)
}

// EmitError pushes the terminal error signal. The completion context is
// captured at the moment of this call, not at delivery, so drop diagnosis
// knows when termination was requested.
func (e *Emitter[T]) EmitError(err error) {
	e.emitTerminal(action[T]{kind: sinkpkg.KindError, err: err})
}

// EmitComplete pushes the terminal completion signal.
func (e *Emitter[T]) EmitComplete() {
	e.emitTerminal(action[T]{kind: sinkpkg.KindComplete})
}

func (e *Emitter[T]) emitTerminal(a action[T]) {
	e.mu.Lock()
	e.terminalSeen = true
	if e.capture {
		e.completionContext = callContext()
	}
	if e.sink == nil {
		e.buffer = append(e.buffer, a)
		e.metrics.RecordEmit(a.kind.String(), true)
		e.metrics.RecordBufferLen(len(e.buffer))
		e.mu.Unlock()
		return
	}
	target := e.sink
	e.mu.Unlock()

	e.metrics.RecordEmit(a.kind.String(), false)
	a.deliver(target)
}

// warnIfDroppedLocked reports a value arriving after a recorded termination.
// The event is still buffered or forwarded; the warning only exists so
// operators can trace the producer's protocol violation. The drop counter
// keys off terminalSeen, so it fires even with diagnostics capture off.
func (e *Emitter[T]) warnIfDroppedLocked(value T) {
	if !e.terminalSeen {
		return
	}
	e.metrics.RecordDrop()
	if !e.capture || e.completionContext == "" {
		return
	}
	e.logger.Warn("event emitted after stream termination will be dropped", loggingpkg.Fields{
		"value":              value,
		"completion_context": e.completionContext,
		"bind_context":       e.bindContext,
	})
}

// Bound reports whether a sink has been attached and the pending buffer
// flushed.
func (e *Emitter[T]) Bound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sink != nil
}

// BufferLen returns the number of not-yet-delivered actions.
func (e *Emitter[T]) BufferLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.buffer)
}

// StateSnapshot is a point-in-time view of the emitter, for debugging.
type StateSnapshot struct {
	SessionID       string `json:"session_id"`
	Bound           bool   `json:"bound"`
	BufferedActions int    `json:"buffered_actions"`
	TerminalSeen    bool   `json:"terminal_seen"`
	CaptureEnabled  bool   `json:"capture_enabled"`
}

// Snapshot returns the current emitter state.
func (e *Emitter[T]) Snapshot() StateSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return StateSnapshot{
		SessionID:       e.sessionID,
		Bound:           e.sink != nil,
		BufferedActions: len(e.buffer),
		TerminalSeen:    e.terminalSeen,
		CaptureEnabled:  e.capture,
	}
}

// DebugJSON renders the snapshot as indented JSON for log attachments.
func (e *Emitter[T]) DebugJSON() ([]byte, error) {
	return jsoncodec.MarshalIndent(e.Snapshot(), "", "  ")
}
