package services_test

import (
	"errors"
	"strings"
	"testing"

	"aiintegration/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("connection refused")
	err := services.Wrap(services.ErrTransport, "ollama generate", "post failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"ollama generate", "post failed", "connection refused"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected default transport marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected generic detail, got %q", err.Error())
	}
}

func TestFailedUnwrapsCause(t *testing.T) {
	cause := services.Wrap(services.ErrTransport, "ollama generate", "http 500", nil)
	err := services.Failed("outlier detection", cause)

	if err.Error() != "outlier detection failed: "+cause.Error() {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport marker through OperationError, got %v", err)
	}
	var opErr *services.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T", err)
	}
	if opErr.Operation != "outlier detection" {
		t.Fatalf("operation=%q", opErr.Operation)
	}
}

func TestFailedWithoutCause(t *testing.T) {
	err := services.Failed("", nil)
	if err.Error() != "operation failed" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
