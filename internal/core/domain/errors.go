// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Taxonomía de errores del monitor.
var (
	// Fatales para el proceso
	ErrCredential   = errors.New("missing credential")
	ErrFetch        = errors.New("scope fetch failed")
	ErrParse        = errors.New("scope parse failed")
	ErrToolNotFound = errors.New("tool not found")

	// Acotados a un dominio
	ErrToolExecution  = errors.New("tool execution failed")
	ErrIO             = errors.New("state i/o failed")
	ErrNotification   = errors.New("notification failed")
	ErrCaptureMissing = errors.New("capture directory missing")

	// Entrada
	ErrInvalidDomain = errors.New("invalid domain")
)

// OpError asocia un error a su clase, la operación y el sujeto (dominio,
// programa, herramienta o ruta).
type OpError struct {
	Kind    error
	Op      string
	Subject string
	Err     error
}

// NewOpError construye un OpError.
func NewOpError(kind error, op, subject string, err error) *OpError {
	return &OpError{Kind: kind, Op: op, Subject: subject, Err: err}
}

func (e *OpError) Error() string {
	msg := e.Op
	if e.Subject != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Subject)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", msg, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", msg, e.Kind)
}

// Unwrap permite errors.Is contra la clase y contra la causa.
func (e *OpError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// IsFatal indica si el error debe abortar el proceso antes de orquestar.
func IsFatal(err error) bool {
	return errors.Is(err, ErrCredential) ||
		errors.Is(err, ErrFetch) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, ErrToolNotFound)
}
