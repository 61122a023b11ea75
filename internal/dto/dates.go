package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for all dates handled by this API.
const DateLayout = "2006-01-02"

// DateOnly is the custom binding validation for YYYY-MM-DD fields, registered
// against gin's validator engine at startup under the tag "dateonly".
func DateOnly(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Emptiness is handled by required/omitempty
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// ParseDate parses a wire date. Callers must have validated the field first;
// a zero time is returned for empty input.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, value)
}

// FormatDate renders a time in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr renders an optional time, returning nil for nil input.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
