package sink

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/bytedance/sonic"

	errspkg "github.com/drblury/streamlatch/internal/errors"
)

// Encoder turns a typed value into the byte payload a backend publishes.
type Encoder[T any] func(value T) ([]byte, error)

// JSONEncoder encodes values as JSON.
func JSONEncoder[T any]() Encoder[T] {
	return func(value T) ([]byte, error) {
		return sonic.ConfigStd.Marshal(value)
	}
}

// NewEncodedSink adapts a byte-payload backend to a typed Sink. Values that
// fail to encode are logged and skipped; they never terminate the stream.
func NewEncodedSink[T any](inner Sink[[]byte], enc Encoder[T], logger watermill.LoggerAdapter) (Sink[T], error) {
	if inner == nil {
		return nil, errspkg.ErrSinkRequired
	}
	if enc == nil {
		return nil, errspkg.ErrEncoderRequired
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &encodedSink[T]{inner: inner, enc: enc, logger: logger}, nil
}

type encodedSink[T any] struct {
	inner  Sink[[]byte]
	enc    Encoder[T]
	logger watermill.LoggerAdapter
}

func (s *encodedSink[T]) AcceptNext(value T) {
	payload, err := s.enc(value)
	if err != nil {
		s.logger.Error("failed to encode value, skipping event", err, nil)
		return
	}
	s.inner.AcceptNext(payload)
}

func (s *encodedSink[T]) AcceptError(err error) {
	s.inner.AcceptError(err)
}

func (s *encodedSink[T]) AcceptComplete() {
	s.inner.AcceptComplete()
}
