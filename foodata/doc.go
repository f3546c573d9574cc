// Package foodata builds FooData from three dependent lookups: some data
// from an API, another data derived from it in a repository, and yet
// another data derived from that. Each lookup can fail with a known fault,
// which is reported as an ErrorKind instead of an error.
//
// Service.GetFooData runs the chain as a pipeline with tracing, metrics and
// logging. Service.GetFooDataDirect runs the same chain with the fault and
// result packages alone.
package foodata
