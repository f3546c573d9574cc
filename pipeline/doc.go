// Package pipeline runs named, strictly ordered stages over a classified
// Result.
//
// A pipeline is lazy. Start, Then, Bind, Map and Tap only describe the
// chain; nothing runs until Run is called, and every Run is independent with
// its own run ID. Stages execute synchronously in declaration order. The first
// stage that fails with an expected fault short-circuits the rest of the run:
// later stages are never invoked and the failure kind is returned as the
// Result. Faults the classifier does not recognise are returned unchanged as
// the error alongside a zero Result, and the remaining stages are skipped.
//
// Before each named stage the context is checked. A cancelled context is
// treated as that stage's fault, so a taxonomy that maps context.Canceled to
// a kind turns cancellation into a Failure; otherwise it escapes as the
// error.
//
// Each named stage gets one span named "<pipeline>.<stage>", a stage counter
// and duration histogram, a debug log line and an Event for observers.
//
// # Usage
//
//	c := fault.New(
//	    fault.Is(ErrSourceDown, SourceUnavailable),
//	    fault.Is(ErrBadRecord, TransformFailed),
//	)
//	p := pipeline.New("foo-data", c, pipeline.WithLogger(log))
//
//	some := pipeline.Start(p, "fetch", api.GetSomeData)
//	another := pipeline.Then(some, "transform", repo.GetAnotherData)
//	foo := pipeline.Map(another, NewFooData)
//
//	r, err := foo.Run(ctx)
//	if err != nil {
//	    return err // not a domain failure
//	}
package pipeline
