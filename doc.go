// Package streamlatch bridges imperative producers with lazily-activated push
// streams. An Emitter accepts values, errors, and completion from any
// goroutine, possibly before a consumer exists; everything emitted before a
// sink binds is buffered and replayed in order, exactly once, the moment a
// subscriber attaches. From then on emissions forward directly.
//
// The usual entry point is New plus Emitter.Stream: producers push into the
// emitter while the consumer subscribes whenever it is ready.
//
//	e := streamlatch.New[string](streamlatch.Options{})
//	e.EmitNext("a")
//	e.EmitNext("b")
//	e.EmitComplete()
//
//	events, _ := e.Stream(0).Subscribe(ctx)
//	for ev := range events {
//		// "a", "b", then the completion event
//	}
//
// # Sink backends
//
// Besides the channel sink backing Subscribe, emitters can bind any Sink
// implementation. Built-in backends register themselves under a name and are
// selected through Config, mirroring how applications pick a message
// transport:
//   - channel: in-memory Go channels for testing and in-process streams
//   - watermill: forwards events onto any Watermill publisher
//   - nats: publishes events to NATS Core subjects
//
// Typed values reach byte-payload backends through NewEncodedSink with a JSON
// or protobuf encoder.
//
// # Drop diagnostics
//
// With Options.CaptureDropContexts enabled, the emitter snapshots the call
// context at bind time and at terminal-emit time. A value emitted after the
// stream's logical termination produces one warning carrying both snapshots,
// so operators can trace which producer kept emitting after completion. The
// event itself is still forwarded; enforcing terminal-then-silence is the
// sink's contract.
//
// Emitters are request-scoped: one instance per stream session, discarded
// after the terminal event. The pending buffer is unbounded; if no sink ever
// binds, buffered events accumulate for the lifetime of the instance.
package streamlatch
