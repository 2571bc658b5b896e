package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsErrorType_ComposedError(t *testing.T) {
	err := NewLLMRequestFailed("test-model", errors.New("boom"))

	if !IsErrorType(err, ErrorTypeLLM) {
		t.Error("expected LLM error type")
	}
	if IsErrorType(err, ErrorTypeGraph) {
		t.Error("did not expect graph error type")
	}
}

func TestIsErrorType_Wrapped(t *testing.T) {
	inner := NewGraphQueryFailed("get profile", errors.New("connection refused"))
	wrapped := fmt.Errorf("handler: %w", inner)

	if !IsErrorType(wrapped, ErrorTypeGraph) {
		t.Error("expected graph error type through wrapping")
	}
}

func TestIsNotFound(t *testing.T) {
	err := NewProfileNotFound("u1")
	if !IsNotFound(err) {
		t.Error("expected not-found")
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if !IsNotFound(wrapped) {
		t.Error("expected not-found through wrapping")
	}

	if IsNotFound(NewGraphUnavailable("bolt://x", errors.New("down"))) {
		t.Error("graph-unavailable must not be not-found")
	}
}

func TestTypeOf_PlainError(t *testing.T) {
	if _, ok := TypeOf(errors.New("plain")); ok {
		t.Error("plain errors carry no taxonomy type")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewGraphUnavailable("bolt://localhost:7687", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}
