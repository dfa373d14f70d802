package validators

import "errors"

// ErrValidation is the sentinel wrapped by every validation failure, so
// callers can match the whole class with [errors.Is].
var ErrValidation = errors.New("validation failed")
