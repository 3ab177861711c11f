package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data availability errors
	ErrNoData          = errors.New("no data loaded")
	ErrSessionNotFound = errors.New("session not found")

	// Validation errors
	ErrSchema       = errors.New("required fields missing")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyColumn  = errors.New("column has no values")
	ErrParse        = errors.New("failed to parse input file")

	// Allocation errors
	ErrDuplicateProject = errors.New("project already exists")
	ErrInsufficientPool = errors.New("not enough eligible employees")
)

// Error constructors with context
func NewSchemaError(reason string) error {
	return fmt.Errorf("%w: %s", ErrSchema, reason)
}

func NewMissingColumnsError(columns ...string) error {
	return fmt.Errorf("%w: dataset must contain %s", ErrSchema, quoteJoin(columns))
}

func NewInvalidInputError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

func NewEmptyColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrEmptyColumn, column)
}

func NewParseError(filename string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrParse, filename)
	}
	return fmt.Errorf("%w: %s: %v", ErrParse, filename, err)
}

func NewDuplicateProjectError(name string) error {
	return fmt.Errorf("%w: project '%s' already exists", ErrDuplicateProject, name)
}

func NewInsufficientPoolError(eligible, requested int) error {
	return fmt.Errorf("%w: %d eligible, %d requested", ErrInsufficientPool, eligible, requested)
}

func NewSessionNotFoundError(id SessionID) error {
	return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

func quoteJoin(items []string) string {
	out := ""
	for i, item := range items {
		switch {
		case i == 0:
		case i == len(items)-1:
			out += " and "
		default:
			out += ", "
		}
		out += "'" + item + "'"
	}
	return out
}
