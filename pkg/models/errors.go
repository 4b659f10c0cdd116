package models

import (
	"errors"
	"fmt"
)

// ErrModelNotLoaded indicates the NER model handle is absent and could
// not be loaded. Maps to 503 at the HTTP boundary.
var ErrModelNotLoaded = errors.New("model not loaded")

// ErrInvalidInput is the sentinel wrapped by InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func NewInvalidInputError(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// TrainingDataError indicates a labeled example that cannot be used as
// training signal. Index is the example's position in the training set.
type TrainingDataError struct {
	Index  int
	Reason string
}

func (e *TrainingDataError) Error() string {
	return fmt.Sprintf("training example %d: %s", e.Index, e.Reason)
}

func NewTrainingDataError(index int, reason string) error {
	return &TrainingDataError{Index: index, Reason: reason}
}
