package ml

import (
	"fmt"
	"strings"
)

// IncompleteInputError reports fields left empty or at their placeholder.
type IncompleteInputError struct {
	Fields []Field
}

func (e *IncompleteInputError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("incomplete input: missing %s", strings.Join(names, ", "))
}

// Labels returns the form labels of the missing fields.
func (e *IncompleteInputError) Labels() []string {
	labels := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		labels[i] = f.Label()
	}
	return labels
}

// NumericFormatError reports a free-text field that is not a finite number.
type NumericFormatError struct {
	Field Field
	Value string
	Err   error
}

func (e *NumericFormatError) Error() string {
	return fmt.Sprintf("%s (%s): %q is not a valid number: %v", e.Field, e.Field.Label(), e.Value, e.Err)
}

func (e *NumericFormatError) Unwrap() error {
	return e.Err
}

// Label returns the form label of the offending field.
func (e *NumericFormatError) Label() string {
	return e.Field.Label()
}

// UnexpectedOutputError is returned when the classifier emits a label other
// than 0 or 1.
type UnexpectedOutputError struct {
	Output int
}

func (e *UnexpectedOutputError) Error() string {
	return fmt.Sprintf("classifier returned unexpected label %d", e.Output)
}

// ClassifierInvocationError wraps a failure raised while calling the classifier.
type ClassifierInvocationError struct {
	Err error
}

func (e *ClassifierInvocationError) Error() string {
	return fmt.Sprintf("classifier invocation failed: %v", e.Err)
}

func (e *ClassifierInvocationError) Unwrap() error {
	return e.Err
}
