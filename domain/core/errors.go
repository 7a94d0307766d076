package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Date/time errors
	ErrMissingDateTime = errors.New("Date/time value is missing")
	ErrInvalidDate     = errors.New("Invalid date")

	// Location errors
	ErrInvalidLocation = errors.New("Location must have either an address or valid coordinates")

	// Classification errors
	ErrUnknownDataset = errors.New("unable to determine dataset type")
	ErrNoData         = errors.New("No data to parse")

	// Read errors
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// NewRowError scopes a cause to a single source row.
func NewRowError(row int, cause error) error {
	return fmt.Errorf("Row %d: %w", row, cause)
}

// NewMissingFieldError reports a field still empty after all defaulting.
func NewMissingFieldError(field string) error {
	return fmt.Errorf("Missing required field %s", field)
}

// Error checking helpers
func IsDateTimeError(err error) bool {
	return errors.Is(err, ErrMissingDateTime) || errors.Is(err, ErrInvalidDate)
}

func IsLocationError(err error) bool {
	return errors.Is(err, ErrInvalidLocation)
}

func IsFatalParseError(err error) bool {
	return errors.Is(err, ErrUnknownDataset) ||
		errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrUnsupportedFile)
}
