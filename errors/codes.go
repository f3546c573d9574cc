package errors

// ErrorCode is a machine-readable error code. Classifiers match on it with
// fault.Code, so a code names a kind of fault rather than a single error.
type ErrorCode string

// Transient faults. AppErrors built with these codes are retryable.
const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeConnectionFailed   ErrorCode = "CONNECTION_FAILED"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeDatabaseError      ErrorCode = "DATABASE_ERROR"
)

// Permanent faults.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeInternal marks a defect. Classifiers should leave it
	// unrecognised so it escapes.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var transient = map[ErrorCode]struct{}{
	ErrCodeServiceUnavailable: {},
	ErrCodeConnectionFailed:   {},
	ErrCodeTimeout:            {},
	ErrCodeRateLimited:        {},
	ErrCodeDatabaseError:      {},
}

// IsRetryableCode reports whether code names a transient fault.
func IsRetryableCode(code ErrorCode) bool {
	_, ok := transient[code]
	return ok
}
