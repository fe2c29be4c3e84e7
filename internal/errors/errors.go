package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	ErrSinkRequired          = sterrors.New("streamlatch: sink is required")
	ErrSinkAlreadyBound      = sterrors.New("streamlatch: a sink is already bound to this emitter")
	ErrStreamAlreadyConsumed = sterrors.New("streamlatch: stream handle has already been subscribed")
	ErrConfigRequired        = sterrors.New("streamlatch: configuration is required")
	ErrPublisherRequired     = sterrors.New("streamlatch: publisher is required")
	ErrTopicRequired         = sterrors.New("streamlatch: topic is required")
	ErrSubjectRequired       = sterrors.New("streamlatch: subject is required")
	ErrEncoderRequired       = sterrors.New("streamlatch: payload encoder is required")
)

// ConfigValidationError wraps the underlying validation failure so callers can
// distinguish configuration problems from runtime errors.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return fmt.Sprintf("streamlatch: invalid configuration: %v", e.Err)
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}
