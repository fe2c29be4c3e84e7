package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: "config is nil",
		},
		{
			name: "empty config defaults to channel",
			cfg:  &Config{},
		},
		{
			name: "channel with buffer",
			cfg:  &Config{SinkSystem: "channel", ChannelBufferSize: 16},
		},
		{
			name:    "negative channel buffer",
			cfg:     &Config{ChannelBufferSize: -1},
			wantErr: "buffer size cannot be negative",
		},
		{
			name:    "watermill without topic",
			cfg:     &Config{SinkSystem: "watermill"},
			wantErr: "watermill: topic is required",
		},
		{
			name: "watermill with topic",
			cfg:  &Config{SinkSystem: "watermill", Topic: "events"},
		},
		{
			name:    "nats without url",
			cfg:     &Config{SinkSystem: "nats", NATSSubject: "events"},
			wantErr: "nats: URL is required",
		},
		{
			name:    "nats without subject",
			cfg:     &Config{SinkSystem: "nats", NATSURL: "nats://localhost:4222"},
			wantErr: "nats: subject is required",
		},
		{
			name: "nats complete",
			cfg:  &Config{SinkSystem: "nats", NATSURL: "nats://localhost:4222", NATSSubject: "events"},
		},
		{
			name: "sink system is case insensitive",
			cfg:  &Config{SinkSystem: "NATS", NATSURL: "nats://localhost:4222", NATSSubject: "events"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigGetters(t *testing.T) {
	cfg := &Config{
		SinkSystem:        "nats",
		ChannelBufferSize: 8,
		Topic:             "events",
		NATSURL:           "nats://localhost:4222",
		NATSSubject:       "stream.session",
	}

	assert.Equal(t, "nats", cfg.GetSinkSystem())
	assert.Equal(t, 8, cfg.GetChannelBufferSize())
	assert.Equal(t, "events", cfg.GetTopic())
	assert.Equal(t, "nats://localhost:4222", cfg.GetNATSURL())
	assert.Equal(t, "stream.session", cfg.GetNATSSubject())
}
