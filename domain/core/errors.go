package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Loading errors
	ErrSourceNotFound = errors.New("data source not found")
	ErrSchemaInvalid  = errors.New("dataset schema invalid")
	ErrEmptyData      = errors.New("dataset has no rows")

	// Filtering errors
	ErrNotNormalized = errors.New("table dates not normalized")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Error constructors with context
func NewSourceNotFoundError(location string) error {
	return fmt.Errorf("%w: %s", ErrSourceNotFound, location)
}

func NewSchemaError(missing []string) error {
	return fmt.Errorf("%w: missing fields %v", ErrSchemaInvalid, missing)
}

func NewFilterError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidFilter, field, reason)
}

// Error checking helpers
func IsSourceNotFound(err error) bool {
	return errors.Is(err, ErrSourceNotFound)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrSchemaInvalid)
}

func IsFilterError(err error) bool {
	return errors.Is(err, ErrInvalidFilter) ||
		errors.Is(err, ErrNotNormalized)
}
