// Package resilience retries transient failures with exponential backoff.
//
// Retry is used by pipeline stages whose producers talk to unreliable
// collaborators. By default only errors marked retryable (an
// *errors.AppError with Retryable set) are retried; everything else is
// returned on the first attempt so that the fault classifier sees it
// immediately.
//
//	value, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (Row, error) {
//	    return repo.Load(ctx, id)
//	})
package resilience
