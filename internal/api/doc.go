// Package api contains the HTTP handlers. Handlers parse and decode the
// request, delegate to a use-case service, and translate the outcome into
// the uniform {message, status, data} response envelope. No business logic
// lives here.
package api
