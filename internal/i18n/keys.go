// Package i18n provides internationalization support for the proposal service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyValidationFailed indicates one or more request fields failed validation.
	ErrKeyValidationFailed = "error.validation_failed"
	// ErrKeyProductNotFound indicates a catalog product could not be resolved.
	ErrKeyProductNotFound = "error.product_not_found"
	// ErrKeyInvalidFormula indicates a custom formula failed to parse or evaluate.
	ErrKeyInvalidFormula = "error.invalid_formula"
	// ErrKeyComputationTimeout indicates the quote computation exceeded its deadline.
	ErrKeyComputationTimeout = "error.computation_timeout"
	// ErrKeySuperseded indicates the request was replaced by a newer one.
	ErrKeySuperseded = "error.superseded"
	// ErrKeyUnknownSystem indicates an unrecognized material system code.
	ErrKeyUnknownSystem = "error.unknown_system"
)

// Success message translation keys.
const (
	// SuccessKeyQuoteComputed indicates a successful quantitative computation.
	SuccessKeyQuoteComputed = "success.quote_computed"
	// SuccessKeyCompositionUpdated indicates a successful composition change.
	SuccessKeyCompositionUpdated = "success.composition_updated"
)
