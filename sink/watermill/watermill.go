// Package watermill provides a sink that forwards events onto a Watermill
// publisher, so an emitter session can feed any transport Watermill speaks.
// The default factory uses the in-memory gochannel Pub/Sub.
package watermill

import (
	"context"

	wm "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	errspkg "github.com/drblury/streamlatch/internal/errors"
	"github.com/drblury/streamlatch/sink"
)

// SinkName is the name used to register this backend.
const SinkName = "watermill"

// Metadata keys set on published messages.
const (
	MetadataKeyEventKind = "streamlatch_event_kind"
	MetadataKeyError     = "streamlatch_error"
)

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(logger wm.LoggerAdapter) (message.Publisher, error) {
	return gochannel.NewGoChannel(gochannel.Config{}, logger), nil
}

func init() {
	Register()
}

// Register registers the watermill backend with the default registry.
func Register() {
	sink.RegisterWithCapabilities(SinkName, Build, sink.WatermillCapabilities)
}

// Build creates a watermill sink publishing to cfg's topic.
func Build(ctx context.Context, cfg sink.Config, logger wm.LoggerAdapter) (sink.Sink[[]byte], error) {
	publisher, err := PublisherFactory(logger)
	if err != nil {
		return nil, err
	}
	return NewPublisherSink(publisher, cfg.GetTopic(), logger)
}

// Capabilities returns the capabilities of this backend.
func Capabilities() sink.Capabilities {
	return sink.WatermillCapabilities
}

// PublisherSink publishes every accepted event as a Watermill message on a
// single topic. The event kind travels in metadata so subscribers can tell
// data from terminal signals. Publish failures are logged; the sink contract
// has no error path back to the producer.
type PublisherSink struct {
	publisher message.Publisher
	topic     string
	logger    wm.LoggerAdapter
}

// NewPublisherSink wraps an existing Watermill publisher. The caller keeps
// ownership of the publisher and closes it after the terminal event.
func NewPublisherSink(publisher message.Publisher, topic string, logger wm.LoggerAdapter) (*PublisherSink, error) {
	if publisher == nil {
		return nil, errspkg.ErrPublisherRequired
	}
	if topic == "" {
		return nil, errspkg.ErrTopicRequired
	}
	if logger == nil {
		logger = wm.NopLogger{}
	}
	return &PublisherSink{publisher: publisher, topic: topic, logger: logger}, nil
}

func (s *PublisherSink) AcceptNext(payload []byte) {
	msg := message.NewMessage(wm.NewULID(), payload)
	msg.Metadata.Set(MetadataKeyEventKind, sink.KindNext.String())
	s.publish(msg)
}

func (s *PublisherSink) AcceptError(err error) {
	msg := message.NewMessage(wm.NewULID(), nil)
	msg.Metadata.Set(MetadataKeyEventKind, sink.KindError.String())
	if err != nil {
		msg.Metadata.Set(MetadataKeyError, err.Error())
	}
	s.publish(msg)
}

func (s *PublisherSink) AcceptComplete() {
	msg := message.NewMessage(wm.NewULID(), nil)
	msg.Metadata.Set(MetadataKeyEventKind, sink.KindComplete.String())
	s.publish(msg)
}

func (s *PublisherSink) publish(msg *message.Message) {
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.logger.Error("failed to publish event", err, wm.LogFields{
			"topic":        s.topic,
			"message_uuid": msg.UUID,
		})
	}
}
