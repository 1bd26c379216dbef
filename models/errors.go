package models

import (
	"errors"
	"sort"
	"strings"
)

// Backend failure taxonomy. Repositories map driver errors onto these so
// controllers can surface distinct user-facing messages.
var (
	ErrNotFound           = errors.New("record not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUnavailable        = errors.New("service unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
)

// ValidationErrors maps field names to human-readable messages. All failed
// fields are collected before returning; validation is never fail-fast.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// AsValidationErrors unwraps err into a ValidationErrors map, if it is one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
