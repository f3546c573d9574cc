// Package errors provides the structured error type shared by railway
// packages and by the leaf producers a pipeline wraps.
//
// An AppError carries a machine-readable ErrorCode, a message, a retryable
// flag and an optional cause. Producers return AppErrors so that a
// fault.Classifier can map them onto a pipeline's error taxonomy by code and
// so that stage retries can tell transient failures from permanent ones.
package errors
