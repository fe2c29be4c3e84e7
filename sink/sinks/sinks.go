// Package sinks imports all built-in sink backends for auto-registration.
// Import this package to have every backend registered with the default
// registry.
package sinks

import (
	// Import all backends for side-effect registration
	_ "github.com/drblury/streamlatch/sink/channel"
	_ "github.com/drblury/streamlatch/sink/nats"
	_ "github.com/drblury/streamlatch/sink/watermill"
)
