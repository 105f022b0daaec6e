package errors

import (
	"errors"
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
	err := Wrap(ErrCodeRenderFailed, cause, "render attempt")

	if err.Code != ErrCodeRenderFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
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
			err:      New(ErrCodeSyntaxRejected, "test"),
			code:     ErrCodeSyntaxRejected,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeSyntaxRejected, "test"),
			code:     ErrCodeRenderFailed,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeRenderFailed, New(ErrCodeSyntaxRejected, "inner"), "outer"),
			code:     ErrCodeRenderFailed,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeSyntaxRejected,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeSyntaxRejected,
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
		{
			name:     "structured error",
			err:      New(ErrCodeCache, "test"),
			expected: ErrCodeCache,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeInternal, errors.New("cause"), "msg"),
			expected: ErrCodeInternal,
		},
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
	structured := New(ErrCodeInvalidInput, "bad node id")
	if got := UserMessage(structured); got != "bad node id" {
		t.Errorf("UserMessage() = %v, want %v", got, "bad node id")
	}

	plain := errors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %v, want %v", got, "plain failure")
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "A", false},
		{"alphanumeric", "node123", false},
		{"underscore and hyphen", "api_gateway-v2", false},
		{"empty", "", true},
		{"spaces", "node one", true},
		{"brackets", "A[label]", true},
		{"unicode", "nöde", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDirection(t *testing.T) {
	for _, dir := range []string{"TB", "TD", "BT", "RL", "LR"} {
		if err := ValidateDirection(dir); err != nil {
			t.Errorf("ValidateDirection(%q) = %v, want nil", dir, err)
		}
	}

	for _, dir := range []string{"", "XY", "tb", "TD "} {
		if err := ValidateDirection(dir); err == nil {
			t.Errorf("ValidateDirection(%q) = nil, want error", dir)
		}
		if !Is(ValidateDirection(dir), ErrCodeInvalidDirection) {
			t.Errorf("ValidateDirection(%q) code = %v, want %v", dir, GetCode(ValidateDirection(dir)), ErrCodeInvalidDirection)
		}
	}
}
