package domain

import "errors"

// ErrValidation is the class sentinel for entity validation failures.
// Every per-field error in this package wraps it, so callers can match
// the whole class with errors.Is without enumerating fields.
var ErrValidation = errors.New("validation failed")
