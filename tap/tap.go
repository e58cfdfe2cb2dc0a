// Package tap contains the packet interception pipeline.
//
// In rough terms, the Dispatcher is meant to be the transport layer's primary
// interface: every intercepted packet is fed through it, listeners get a
// chance to inspect, rewrite, cancel, or defer it, and whatever comes out the
// other end is what actually goes on the wire.
//
// Deferral works by attaching a continuation marker to the event. If a marker
// is still attached when the listener chain ends, the Dispatcher forks the
// event into its asynchronous continuation and hands it to the Deferred sink.
// Draining that sink is the embedder's job.
package tap
