// Package proto provides a protobuf payload encoder for byte-payload sinks,
// so emitter sessions carrying proto messages can feed the watermill and NATS
// backends.
package proto

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/drblury/streamlatch/sink"
)

var marshalOptions = protojson.MarshalOptions{
	EmitUnpopulated: true,
}

// Encoder encodes proto messages as canonical protojson.
func Encoder[T proto.Message]() sink.Encoder[T] {
	return func(value T) ([]byte, error) {
		return marshalOptions.Marshal(value)
	}
}

// BinaryEncoder encodes proto messages in the protobuf wire format, for
// backends where payload size matters more than readability.
func BinaryEncoder[T proto.Message]() sink.Encoder[T] {
	return func(value T) ([]byte, error) {
		return proto.Marshal(value)
	}
}
