package models

import "errors"

// Common errors used throughout the application
var (
	ErrCatalogUnavailable  = errors.New("catalog unavailable")
	ErrEventNotFound       = errors.New("event not found")
	ErrMalformedEvent      = errors.New("malformed event record")
	ErrMetadataUnavailable = errors.New("ticket metadata unavailable")
	ErrCartEmpty           = errors.New("cart empty")
	ErrMissingEmail        = errors.New("missing email")
	ErrNoCheckoutURL       = errors.New("no checkout URL")
	ErrCheckoutFailed      = errors.New("checkout failed")
)
