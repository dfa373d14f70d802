package service

import "errors"

var (
	// ErrNotAuthenticated is returned when a vault operation runs before
	// a successful Register or Login has installed the vault key.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMaxRetriesReached is returned when a sync cycle exhausts its
	// retry budget without converging, typically because another device
	// keeps winning the upload race.
	ErrMaxRetriesReached = errors.New("sync retry budget exhausted")

	// ErrMutationRejected wraps an error returned by a [MutationFunc].
	// The persisted vault state is guaranteed untouched.
	ErrMutationRejected = errors.New("mutation rejected")

	ErrRegisterOnServer = errors.New("register on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")

	// ErrWrongCredentials is returned by the server auth service when the
	// login is unknown or the auth proof does not match.
	ErrWrongCredentials = errors.New("wrong login or password")

	// ErrInvalidDataProvided is returned by server services on requests
	// missing required fields.
	ErrInvalidDataProvided = errors.New("invalid data provided")
)
