// Package simerror defines the typed errors returned around the simulation: loading,
// validating and stepping scenarios. The engine itself never returns an error.
package simerror

import (
	"errors"
	"fmt"
)

// ValidationError reports a scenario or input that breaks a structural rule.
type ValidationError struct {
	Scenario string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid scenario '%s': %s", e.Scenario, e.Reason)
	}
	return fmt.Sprintf("invalid scenario '%s': %s: %s", e.Scenario, e.Field, e.Reason)
}

// NotFoundError reports a lookup by id that matched nothing.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.ID)
}

// LoadError wraps a failure to read or decode a file.
type LoadError struct {
	FilePath string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.FilePath, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// HorizonReachedError is returned when a caller asks a session to step past the
// scenario's configured number of months.
type HorizonReachedError struct {
	Scenario    string
	TotalMonths int
}

func (e *HorizonReachedError) Error() string {
	return fmt.Sprintf("scenario '%s' already ran its %d months", e.Scenario, e.TotalMonths)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
