package api

import (
	"errors"
	"net/http"

	"github.com/mstiles/blog-api/internal/api/shared"
	"github.com/mstiles/blog-api/internal/rules"
	"github.com/mstiles/blog-api/internal/service/auth"
	"github.com/mstiles/blog-api/internal/store"
)

// Messages surfaced to clients. Validation messages come from the rules
// package verbatim; everything else is fixed here so internal error text
// never leaks into a response.
const (
	msgUnauthorized   = "Unauthorized user"
	msgEmailExists    = "Email already registered"
	msgInvalidRequest = "Invalid request format"
	msgInternal       = "An unexpected error occurred"
)

// HandleError converts a use-case error into the error envelope with an
// appropriate HTTP status code. The raw error is logged, never returned.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *rules.ValidationError

	switch {
	case errors.As(err, &ve):
		shared.RespondError(w, r, http.StatusBadRequest, ve.Message, err)

	case errors.Is(err, auth.ErrNotAuthorized):
		shared.RespondError(w, r, http.StatusUnauthorized, msgUnauthorized, err)

	case errors.Is(err, store.ErrEmailExists):
		shared.RespondError(w, r, http.StatusConflict, msgEmailExists, err)

	default:
		shared.RespondError(w, r, http.StatusInternalServerError, msgInternal, err)
	}
}
