package hookbind

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by New when the configuration could make
	// the rewrite produce new markers or unparseable attributes.
	ErrInvalidConfig = errors.New("hookbind: invalid config")

	// ErrTemplateNotFound is returned when a component contains the marker
	// but has no <template> ... </template> region.
	ErrTemplateNotFound = errors.New("hookbind: template region not found")

	// ErrMalformedMarker marks a marker occurrence that is not followed by a
	// quoted, non-empty attribute value.
	ErrMalformedMarker = errors.New("hookbind: malformed marker")
)

// MarkerError describes a skipped marker occurrence
type MarkerError struct {
	Line   int
	Column int
	Reason string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, ErrMalformedMarker.Error(), e.Reason)
}

func (e *MarkerError) Unwrap() error {
	return ErrMalformedMarker
}

// Code is a short error class, used as a log field.
type Code string

const (
	CodeUnknown  Code = "unknown"
	CodeConfig   Code = "config"
	CodeTemplate Code = "template"
	CodeMarker   Code = "marker"
)

// Classify maps err to its Code
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, ErrInvalidConfig):
		return CodeConfig
	case errors.Is(err, ErrTemplateNotFound):
		return CodeTemplate
	case errors.Is(err, ErrMalformedMarker):
		return CodeMarker
	}

	return CodeUnknown
}
