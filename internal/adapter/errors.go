package adapter

import "errors"

var (
	// ErrUnreachable wraps transport-level failures (connection refused,
	// DNS, timeout). The orchestrator treats it as "offline", never as a
	// fatal error.
	ErrUnreachable = errors.New("server unreachable")

	// ErrOutdated is returned when an upload's base revision is stale:
	// another device advanced the vault first. Expected signal for a
	// merge-and-retry cycle.
	ErrOutdated = errors.New("upload base revision outdated")

	// ErrConflict is the generic HTTP 409 mapping. On the upload path it
	// is translated to the more specific [ErrOutdated].
	ErrConflict = errors.New("conflict")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")
)
