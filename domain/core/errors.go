package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)
	ErrNoAnalysis      = fmt.Errorf("%w: analysis session", ErrNotFound)

	// Input errors
	ErrEmptyDataset     = errors.New("dataset has no rows")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	ErrMalformedInput   = errors.New("malformed input")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Collaborator errors
	ErrPredictionFailed    = errors.New("prediction collaborator failed")
	ErrPredictionMalformed = errors.New("prediction collaborator returned malformed payload")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewParseError(filename string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedInput, filename, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrMalformedInput)
}

func IsCollaboratorError(err error) bool {
	return errors.Is(err, ErrPredictionFailed) ||
		errors.Is(err, ErrPredictionMalformed)
}
