package service

import "errors"

// Failure classes surfaced to handlers. Not-found and unauthorized
// outcomes are decided before any storage I/O; anything else is a
// system failure.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrBundleNotFound  = errors.New("bundle not found")

	ErrUnauthorized      = errors.New("unauthorized")
	ErrOrderNotCompleted = errors.New("order not purchased yet")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")

	ErrLicenseNotOffered = errors.New("license not offered for this product")
)

// IsNotFound reports whether err belongs to the 404 class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrBundleNotFound)
}

// IsUnauthorized reports whether err belongs to the 401 class.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrOrderNotCompleted) ||
		errors.Is(err, ErrInvalidCredentials)
}
