// Package fault turns the errors returned by leaf producers into members of a
// closed error taxonomy.
//
// A Classifier is built from an ordered list of rules, each mapping a family
// of errors to one Kind. Wrap runs a producer and converts its outcome into a
// result.Result: a nil error becomes Success, a recognized error becomes
// Failure(kind), and an error no rule recognizes is handed back to the caller
// untouched. Unrecognized errors are never folded into the taxonomy, because
// they signal a defect or an outage rather than a known business failure.
//
// Panics are not recovered.
//
// # Usage
//
//	classifier := fault.New(
//	    fault.Is(ErrUpstreamDown, SourceUnavailable),
//	    fault.Code(errors.ErrCodeInvalidFormat, TransformFailed),
//	)
//	r, err := fault.Wrap(classifier, client.Fetch)
//	if err != nil {
//	    return err // unexpected: no Result was produced
//	}
package fault
