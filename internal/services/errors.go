package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTransport     = errors.New("transport failure")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrDecode        = errors.New("decode error")
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker. The marker should be one of the exported sentinel
// errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// OperationError is the single failure reported to callers when a model-backed
// operation cannot produce a result. The underlying cause stays reachable
// through errors.Is and errors.As.
type OperationError struct {
	Operation string
	Err       error
}

func (e *OperationError) Error() string {
	op := strings.TrimSpace(e.Operation)
	if op == "" {
		op = "operation"
	}
	if e.Err == nil {
		return op + " failed"
	}
	return op + " failed: " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Failed wraps err into an OperationError for the named operation.
func Failed(operation string, err error) error {
	return &OperationError{Operation: operation, Err: err}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
