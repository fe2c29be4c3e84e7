package config

import (
	"errors"
	"strings"
)

// Config groups the settings required to build an emitter session and its
// sink backend. Each sink backend only uses the keys that are relevant to it.
type Config struct {
	// SinkSystem selects the backing sink. Supported values: "channel",
	// "watermill", or "nats". Empty defaults to "channel".
	SinkSystem string

	// CaptureDropContexts enables textual call-context capture at bind time
	// and at terminal-emit time so dropped events can be traced back to the
	// producer that caused them. Off by default since capturing stacks on
	// every terminal emit is not free.
	CaptureDropContexts bool

	// ChannelBufferSize is the buffer of the channel handed to subscribers.
	// Zero means unbuffered.
	ChannelBufferSize int

	// Watermill configuration.
	// Topic is the topic events are published to by the watermill sink.
	Topic string

	// NATS configuration.
	NATSURL string
	// NATSSubject is the base subject; terminal signals are published on
	// "<subject>.error" and "<subject>.complete".
	NATSSubject string

	// Metrics configuration.
	MetricsEnabled bool
}

// Getter methods to implement sink.Config.
func (c *Config) GetSinkSystem() string     { return c.SinkSystem }
func (c *Config) GetChannelBufferSize() int { return c.ChannelBufferSize }
func (c *Config) GetTopic() string          { return c.Topic }
func (c *Config) GetNATSURL() string        { return c.NATSURL }
func (c *Config) GetNATSSubject() string    { return c.NATSSubject }

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.validateSink()...)

	if c.ChannelBufferSize < 0 {
		errs = append(errs, errors.New("channel: buffer size cannot be negative"))
	}

	return errors.Join(errs...)
}

// validateSink checks sink-specific required fields.
func (c *Config) validateSink() []error {
	switch strings.ToLower(c.SinkSystem) {
	case "nats":
		var errs []error
		if c.NATSURL == "" {
			errs = append(errs, errors.New("nats: URL is required"))
		}
		if c.NATSSubject == "" {
			errs = append(errs, errors.New("nats: subject is required"))
		}
		return errs
	case "watermill":
		if c.Topic == "" {
			return []error{errors.New("watermill: topic is required")}
		}
	}
	// channel, "", and custom sinks have no required config
	return nil
}

// ValidateConfig validates the provided configuration.
func ValidateConfig(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}
