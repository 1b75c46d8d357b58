package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to read")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeOperation,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "validation error",
			err:      &ValidationError{Plugin: "mermaid", Executable: "mmdc"},
			code:     ErrCodeValidation,
			expected: true,
		},
		{
			name:     "operation error behind fmt wrap",
			err:      fmt.Errorf("render: %w", &OperationError{Plugin: "mermaid"}),
			code:     ErrCodeOperation,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidFormat, "test"), ErrCodeInvalidFormat},
		{"validation", &ValidationError{Plugin: "mermaid"}, ErrCodeValidation},
		{"operation", &OperationError{Plugin: "mermaid"}, ErrCodeOperation},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Run("with package", func(t *testing.T) {
		err := &ValidationError{Plugin: "mermaid", Executable: "mmdc", Package: "mermaid.cli"}
		expected := "mermaid requires mermaid.cli (which provides the 'mmdc' command) to be installed."
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("without package", func(t *testing.T) {
		err := &ValidationError{Plugin: "plantuml", Executable: "plantuml"}
		if !strings.Contains(err.Error(), "'plantuml'") {
			t.Errorf("Error() = %q, should name the executable", err.Error())
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("exec: not found")
		err := &ValidationError{Plugin: "mermaid", Executable: "mmdc", Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("errors.Is(err, cause) = false, want true")
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &ValidationError{}
		if err.Code() != ErrCodeValidation {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeValidation)
		}
	})
}

func TestOperationError(t *testing.T) {
	t.Run("with paths", func(t *testing.T) {
		err := &OperationError{
			Plugin: "mermaid",
			Input:  "/tmp/in.mmd",
			Output: "/tmp/out.png",
			Stderr: "Parse error on line 1",
		}
		expected := "mermaid encountered an error while compiling from /tmp/in.mmd to /tmp/out.png: Parse error on line 1"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("falls back to cause", func(t *testing.T) {
		err := &OperationError{Plugin: "graphviz", Cause: errors.New("syntax error in line 2")}
		if !strings.HasSuffix(err.Error(), "syntax error in line 2") {
			t.Errorf("Error() = %q, should end with the cause", err.Error())
		}
	})

	t.Run("stderr preferred over cause", func(t *testing.T) {
		err := &OperationError{Plugin: "mermaid", Input: "a", Output: "b", Stderr: "boom", Cause: errors.New("exit status 1")}
		if !strings.HasSuffix(err.Error(), ": boom") {
			t.Errorf("Error() = %q, should end with stderr", err.Error())
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &OperationError{}
		if err.Code() != ErrCodeOperation {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeOperation)
		}
	})
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidTheme,
		ErrCodeInvalidVersion,
		ErrCodeInvalidPath,
		ErrCodeValidation,
		ErrCodeOperation,
		ErrCodeUnsupported,
		ErrCodeIncompatible,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
