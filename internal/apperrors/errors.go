package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrRateNotFound indicates that no direct or inverse exchange rate exists for a
// currency pair. Reported to the caller as a business error, never retried locally.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrProviderFetch indicates a transient failure while fetching rates from an
// external provider. Recovered internally by moving to the next provider; only
// surfaced through logs.
var ErrProviderFetch = errors.New("provider fetch failed")

// ErrRateRefresh indicates the refresh cycle produced no writable rate set.
// Effectively unreachable while the default table exists; the next scheduled
// tick retries naturally.
var ErrRateRefresh = errors.New("rate refresh failed")
