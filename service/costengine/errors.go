package costengine

import "errors"

var (
	// ErrEmptyInput is returned when there are no billing or usage rows to work on.
	ErrEmptyInput = errors.New("no data")

	// ErrInvalidDiscountRate is returned when a discount rate is outside (0, 1).
	ErrInvalidDiscountRate = errors.New("discount rate must be a fraction between 0 and 1 (exclusive)")

	// ErrInvalidTopN is returned when the requested table size is not positive.
	ErrInvalidTopN = errors.New("top n must be a positive integer")

	// ErrInvalidPeriodHours is returned when the billing period length is not positive.
	ErrInvalidPeriodHours = errors.New("period hours must be positive")

	// ErrLookupFailure marks a pricing catalog failure for a single instance type.
	// It is absorbed by EnrichWithReservedSavings and never aborts a report.
	ErrLookupFailure = errors.New("reserved price lookup failed")

	// ErrUpstreamUnavailable is returned when the billing or pricing API cannot be
	// reached or rejects the credentials. The whole report fails.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedUsage is returned when a usage report cannot be parsed.
	ErrMalformedUsage = errors.New("malformed usage report")
)
