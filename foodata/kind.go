package foodata

import (
	stderrors "errors"

	"github.com/kbukum/railway/errors"
	"github.com/kbukum/railway/fault"
)

// ErrorKind is the closed set of ways GetFooData can fail.
type ErrorKind int

const (
	// SourceUnavailable means some data could not be fetched.
	SourceUnavailable ErrorKind = iota + 1
	// TransformFailed means another data could not be derived.
	TransformFailed
	// DownstreamUnavailable means yet another data could not be loaded.
	DownstreamUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case SourceUnavailable:
		return "source_unavailable"
	case TransformFailed:
		return "transform_failed"
	case DownstreamUnavailable:
		return "downstream_unavailable"
	default:
		return "unknown"
	}
}

// Kinds returns every ErrorKind.
func Kinds() []ErrorKind {
	return []ErrorKind{SourceUnavailable, TransformFailed, DownstreamUnavailable}
}

// Faults raised by collaborators.
var (
	ErrSomeDataUnavailable       = stderrors.New("some data unavailable")
	ErrAnotherDataFailed         = stderrors.New("another data failed")
	ErrYetAnotherDataUnavailable = stderrors.New("yet another data unavailable")
)

// NewClassifier maps collaborator faults to kinds. Besides the sentinels it
// recognises AppError codes: availability codes from the API, invalid
// formats from the transform and storage errors from the repository.
// Anything else is unexpected.
func NewClassifier() *fault.Classifier[ErrorKind] {
	return fault.New(
		fault.Is(ErrSomeDataUnavailable, SourceUnavailable),
		fault.Is(ErrAnotherDataFailed, TransformFailed),
		fault.Is(ErrYetAnotherDataUnavailable, DownstreamUnavailable),
		fault.Code(errors.ErrCodeServiceUnavailable, SourceUnavailable),
		fault.Code(errors.ErrCodeConnectionFailed, SourceUnavailable),
		fault.Code(errors.ErrCodeTimeout, SourceUnavailable),
		fault.Code(errors.ErrCodeInvalidFormat, TransformFailed),
		fault.Code(errors.ErrCodeDatabaseError, DownstreamUnavailable),
	)
}
