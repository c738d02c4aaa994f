package providers

import "errors"

var (
	// ErrDatabaseIsNotReadyYet returns if you are trying to access
	// an offline provider but it has failed to open a database.
	ErrDatabaseIsNotReadyYet = errors.New("database is not initialized yet")

	// ErrAuthTokenIsRequired is returned by providers which require some
	// token to work but were configured without it.
	ErrAuthTokenIsRequired = errors.New("auth token is required")
)
