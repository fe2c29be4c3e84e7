package streamlatch

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"

	configpkg "github.com/drblury/streamlatch/internal/config"
	emitterpkg "github.com/drblury/streamlatch/internal/emitter"
	errspkg "github.com/drblury/streamlatch/internal/errors"
	"github.com/drblury/streamlatch/internal/jsoncodec"
	loggingpkg "github.com/drblury/streamlatch/internal/logging"
	metricspkg "github.com/drblury/streamlatch/internal/metrics"
	sinkpkg "github.com/drblury/streamlatch/sink"
	_ "github.com/drblury/streamlatch/sink/sinks"
)

type (
	Emitter[T any] = emitterpkg.Emitter[T]
	Handle[T any]  = emitterpkg.Handle[T]
	Options        = emitterpkg.Options
	StateSnapshot  = emitterpkg.StateSnapshot

	Sink[T any]    = sinkpkg.Sink[T]
	Event[T any]   = sinkpkg.Event[T]
	EventKind      = sinkpkg.EventKind
	Encoder[T any] = sinkpkg.Encoder[T]

	SinkConfig       = sinkpkg.Config
	SinkBuilder      = sinkpkg.Builder
	SinkRegistry     = sinkpkg.Registry
	SinkCapabilities = sinkpkg.Capabilities

	Config                = configpkg.Config
	ConfigValidationError = errspkg.ConfigValidationError

	Logger        = loggingpkg.Logger
	LogFields     = loggingpkg.Fields
	CaptureLogger = loggingpkg.CaptureLogger

	EmitterMetrics  = metricspkg.EmitterMetrics
	MetricsSnapshot = metricspkg.Snapshot
)

const (
	KindNext     = sinkpkg.KindNext
	KindError    = sinkpkg.KindError
	KindComplete = sinkpkg.KindComplete
)

var (
	ValidateConfig = configpkg.ValidateConfig

	NewSlogLogger      = loggingpkg.NewSlogLogger
	NewWatermillLogger = loggingpkg.NewWatermillLogger
	NopLogger          = loggingpkg.Nop
	NewCaptureLogger   = loggingpkg.NewCaptureLogger

	NewEmitterMetrics = metricspkg.NewEmitterMetrics

	NewSinkRegistry              = sinkpkg.NewRegistry
	RegisterSink                 = sinkpkg.Register
	RegisterSinkWithCapabilities = sinkpkg.RegisterWithCapabilities
	SinkCapabilitiesFor          = sinkpkg.GetCapabilities
	BuildSink                    = sinkpkg.Build

	// JSON helpers shared with the rest of the module.
	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Unmarshal     = jsoncodec.Unmarshal

	ErrSinkRequired          = errspkg.ErrSinkRequired
	ErrEncoderRequired       = errspkg.ErrEncoderRequired
	ErrSinkAlreadyBound      = errspkg.ErrSinkAlreadyBound
	ErrStreamAlreadyConsumed = errspkg.ErrStreamAlreadyConsumed
	ErrPublisherRequired     = errspkg.ErrPublisherRequired
	ErrTopicRequired         = errspkg.ErrTopicRequired
	ErrSubjectRequired       = errspkg.ErrSubjectRequired
)

// New creates an emitter for one stream session.
func New[T any](opts Options) *Emitter[T] {
	return emitterpkg.New[T](opts)
}

// NewEncodedSink adapts a byte-payload sink backend to a typed Sink.
func NewEncodedSink[T any](inner Sink[[]byte], enc Encoder[T], logger watermill.LoggerAdapter) (Sink[T], error) {
	return sinkpkg.NewEncodedSink(inner, enc, logger)
}

// JSONEncoder encodes values as JSON for byte-payload backends.
func JSONEncoder[T any]() Encoder[T] {
	return sinkpkg.JSONEncoder[T]()
}

// NewBoundEmitter builds a byte-payload emitter wired to the sink backend
// selected by cfg and binds it immediately. Use this when the downstream
// consumer (a broker, a Watermill publisher) exists from the start and only
// the producer side needs the emitter API; use New plus Stream when the
// consumer attaches later.
func NewBoundEmitter(ctx context.Context, cfg *Config, logger watermill.LoggerAdapter) (*Emitter[[]byte], error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, ConfigValidationError{Err: err}
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	s, err := BuildSink(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var m *EmitterMetrics
	if cfg.MetricsEnabled {
		m = NewEmitterMetrics(nil)
		if err := m.Register(); err != nil {
			return nil, err
		}
	}

	e := emitterpkg.New[[]byte](Options{
		Logger:              loggingpkg.NewWatermillLogger(logger),
		Metrics:             m,
		CaptureDropContexts: cfg.CaptureDropContexts,
	})
	if err := e.BindContext(ctx, s); err != nil {
		return nil, err
	}
	return e, nil
}
