package identity

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid identity client config")

	// ErrUnauthorized is returned when the session token is rejected
	ErrUnauthorized = errors.New("unauthorized: session token rejected")

	// ErrUnavailable is returned when the provider cannot be reached or
	// answers with a server error
	ErrUnavailable = errors.New("identity provider unavailable")
)
