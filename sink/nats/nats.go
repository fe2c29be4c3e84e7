// Package nats provides a NATS Core sink for streamlatch. Data events are
// published on the configured subject; terminal signals go to the ".error"
// and ".complete" child subjects so subscribers can route them separately.
package nats

import (
	"context"

	wm "github.com/ThreeDotsLabs/watermill"
	natsio "github.com/nats-io/nats.go"

	errspkg "github.com/drblury/streamlatch/internal/errors"
	"github.com/drblury/streamlatch/sink"
)

// SinkName is the name used to register this backend.
const SinkName = "nats"

// Publisher is the subset of *nats.Conn the sink needs, extracted so tests
// can substitute a fake connection.
type Publisher interface {
	Publish(subj string, data []byte) error
	Flush() error
}

// ConnectFactory allows overriding the connection creation for testing.
var ConnectFactory = func(url string) (Publisher, error) {
	return natsio.Connect(url)
}

func init() {
	Register()
}

// Register registers the NATS backend with the default registry.
func Register() {
	sink.RegisterWithCapabilities(SinkName, Build, sink.NATSCapabilities)
}

// Build creates a NATS sink from cfg's URL and subject.
func Build(ctx context.Context, cfg sink.Config, logger wm.LoggerAdapter) (sink.Sink[[]byte], error) {
	conn, err := ConnectFactory(cfg.GetNATSURL())
	if err != nil {
		return nil, err
	}
	return NewSubjectSink(conn, cfg.GetNATSSubject(), logger)
}

// Capabilities returns the capabilities of this backend.
func Capabilities() sink.Capabilities {
	return sink.NATSCapabilities
}

// SubjectSink publishes accepted events to NATS subjects. Publish failures
// are logged; the sink contract has no error path back to the producer.
type SubjectSink struct {
	conn    Publisher
	subject string
	logger  wm.LoggerAdapter
}

// NewSubjectSink wraps an existing NATS connection. The caller keeps
// ownership of the connection and closes it after the terminal event.
func NewSubjectSink(conn Publisher, subject string, logger wm.LoggerAdapter) (*SubjectSink, error) {
	if conn == nil {
		return nil, errspkg.ErrPublisherRequired
	}
	if subject == "" {
		return nil, errspkg.ErrSubjectRequired
	}
	if logger == nil {
		logger = wm.NopLogger{}
	}
	return &SubjectSink{conn: conn, subject: subject, logger: logger}, nil
}

func (s *SubjectSink) AcceptNext(payload []byte) {
	s.publish(s.subject, payload)
}

func (s *SubjectSink) AcceptError(err error) {
	var payload []byte
	if err != nil {
		payload = []byte(err.Error())
	}
	s.publish(s.subject+".error", payload)
	s.flush()
}

func (s *SubjectSink) AcceptComplete() {
	s.publish(s.subject+".complete", nil)
	s.flush()
}

func (s *SubjectSink) publish(subject string, payload []byte) {
	if err := s.conn.Publish(subject, payload); err != nil {
		s.logger.Error("failed to publish event", err, wm.LogFields{"subject": subject})
	}
}

// flush forces terminal signals out before the session is discarded.
func (s *SubjectSink) flush() {
	if err := s.conn.Flush(); err != nil {
		s.logger.Error("failed to flush connection", err, wm.LogFields{"subject": s.subject})
	}
}
