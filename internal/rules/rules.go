// Package rules implements the declarative per-field input validation used
// by every mutating endpoint. Each field is checked against a list of rules;
// the first failing rule produces a human-readable message naming the field
// and the violated rule, and validation for the request halts there.
//
// Emptiness policy: only the "required" rule rejects empty values. The
// "varchar", "text" and "date" rules treat an empty or absent value as
// valid, so optional fields validate cleanly without extra plumbing.
package rules

import (
	"fmt"
	"time"
)

// Rule identifies a single field validation rule.
type Rule string

// Supported rules.
const (
	// Required rejects absent or empty values.
	Required Rule = "required"

	// Varchar accepts strings of at most MaxVarcharLength characters.
	Varchar Rule = "varchar"

	// Text accepts any string.
	Text Rule = "text"

	// Date accepts strings that parse as a calendar date.
	Date Rule = "date"
)

// MaxVarcharLength is the storage column limit enforced by the varchar rule.
const MaxVarcharLength = 255

// dateLayouts are the accepted formats for the date rule, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ValidationError describes a single field failing a rule. The message is
// safe to surface to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// failf builds a ValidationError for the given field.
func failf(field, format string, args ...any) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Input "+field+" "+format, args...),
	}
}

// Check evaluates a single rule against a field value. The value is typed
// as any because request bodies are client-controlled JSON; a rule that
// expects a string must reject other types, not panic on them.
// Returns nil if the value satisfies the rule, or a *ValidationError.
func Check(field string, value any, rule Rule) error {
	switch rule {
	case Required:
		if isEmpty(value) {
			return failf(field, "is required")
		}
		return nil

	case Text:
		if isEmpty(value) {
			return nil
		}
		if _, ok := value.(string); !ok {
			return failf(field, "must be a string")
		}
		return nil

	case Varchar:
		if isEmpty(value) {
			return nil
		}
		s, ok := value.(string)
		if !ok || len(s) > MaxVarcharLength {
			return failf(field, "must be a string with max length of %d characters", MaxVarcharLength)
		}
		return nil

	case Date:
		if isEmpty(value) {
			return nil
		}
		s, ok := value.(string)
		if !ok {
			return failf(field, "must be a valid date")
		}
		if _, err := ParseDate(s); err != nil {
			return failf(field, "must be a valid date")
		}
		return nil

	default:
		// Unknown rules pass, mirroring the permissive default of the
		// validation table this was modeled on.
		return nil
	}
}

// Validate evaluates the given rules against a field value in order and
// returns the first failure, or nil if every rule passes.
func Validate(field string, value any, ruleList ...Rule) error {
	for _, rule := range ruleList {
		if err := Check(field, value, rule); err != nil {
			return err
		}
	}
	return nil
}

// ParseDate parses a value accepted by the date rule into a time.Time.
func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// isEmpty reports whether a decoded JSON value counts as absent.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}
