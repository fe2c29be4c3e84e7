package sink

// Capabilities describes the features supported by a sink backend. Use this
// to introspect what a configured backend can express at runtime.
type Capabilities struct {
	// SupportsErrorSignal indicates the backend carries a distinct terminal
	// error signal. When false, errors are flattened into encoded data.
	SupportsErrorSignal bool

	// SupportsCompletionSignal indicates the backend carries a distinct
	// completion signal.
	SupportsCompletionSignal bool

	// SupportsOrdering indicates the backend preserves emission order.
	SupportsOrdering bool

	// Durable indicates events survive the process (broker-backed sinks).
	Durable bool

	// SupportsFanOut indicates the backend can deliver to multiple
	// downstream consumers even though the emitter itself is
	// single-subscriber.
	SupportsFanOut bool

	// MaxPayloadSize is the maximum payload size in bytes (0 = unlimited/unknown).
	MaxPayloadSize int64

	// Name is the human-readable name of the backend.
	Name string

	// Version is the backend/driver version.
	Version string
}

// SupportsTerminalSignals returns true if both terminal signals are carried
// natively rather than emulated in payload data.
func (c Capabilities) SupportsTerminalSignals() bool {
	return c.SupportsErrorSignal && c.SupportsCompletionSignal
}

// RequiresTerminalEmulation returns true if terminal signals must be encoded
// into ordinary payloads by the application.
func (c Capabilities) RequiresTerminalEmulation() bool {
	return !c.SupportsTerminalSignals()
}

// Predefined capability sets for the built-in backends.
var (
	// ChannelCapabilities for the in-memory Go channel sink.
	ChannelCapabilities = Capabilities{
		Name:                     "channel",
		SupportsErrorSignal:      true,
		SupportsCompletionSignal: true,
		SupportsOrdering:         true,
		Durable:                  false,
		SupportsFanOut:           false,
	}

	// WatermillCapabilities for the watermill publisher sink.
	WatermillCapabilities = Capabilities{
		Name:                     "watermill",
		SupportsErrorSignal:      true,
		SupportsCompletionSignal: true,
		SupportsOrdering:         true,
		Durable:                  false,
		SupportsFanOut:           true,
	}

	// NATSCapabilities for the NATS Core sink.
	NATSCapabilities = Capabilities{
		Name:                     "nats",
		SupportsErrorSignal:      true,
		SupportsCompletionSignal: true,
		SupportsOrdering:         true,
		Durable:                  false,
		SupportsFanOut:           true,
		MaxPayloadSize:           1024 * 1024,
	}
)
