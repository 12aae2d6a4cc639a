package auth

import "errors"

// ErrNotAuthorized is the single signal returned for every failed
// credential check: unknown email, wrong password, and soft-deleted user
// all collapse into it, so callers cannot tell which emails are registered.
// It also covers ownership mismatches on blog mutations. Unauthenticated is
// a normal outcome, not an internal fault.
var ErrNotAuthorized = errors.New("not authorized")
