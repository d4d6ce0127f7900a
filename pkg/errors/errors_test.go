package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("illegal base64 data at input byte 4")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "new",
			err:  New(ErrCodeInvalidDate, "birth date %s is not in the past", "2999-01-01"),
			want: "INVALID_DATE: birth date 2999-01-01 is not in the past",
		},
		{
			name: "wrapped",
			err:  Wrap(ErrCodeUndecodableToken, cause, "decode %q", "!!!"),
			want: `UNDECODABLE_SHARE_TOKEN: decode "!!!": illegal base64 data at input byte 4`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("exec: \"xclip\": executable file not found")
	err := Wrap(ErrCodeClipboardUnavailable, cause, "copy to clipboard")

	if err.Code != ErrCodeClipboardUnavailable || err.Message != "copy to clipboard" {
		t.Errorf("got %s / %q", err.Code, err.Message)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(fmt.Errorf("share: %w", err), cause) {
		t.Error("cause lost through fmt.Errorf")
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
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "inner code",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "through fmt.Errorf",
			err:      fmt.Errorf("load: %w", Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidDate, "inner"), "outer")),
			code:     ErrCodeInvalidDate,
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidDate, "test"),
			expected: ErrCodeInvalidDate,
		},
		{
			name:     "outermost wins",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "inner"), "outer"),
			expected: ErrCodeInvalidConfig,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
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
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidDate, "Please enter a date in the past."),
			expected: "Please enter a date in the past.",
		},
		{
			name:     "wrapped cause stays hidden",
			err:      fmt.Errorf("open link: %w", Wrap(ErrCodeInvalidInput, errors.New("parse \":\": missing protocol scheme"), "parse link")),
			expected: "parse link",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"undecodable token", New(ErrCodeUndecodableToken, "bad token"), true},
		{"measurement", New(ErrCodeMeasurementUnavailable, "not measured"), true},
		{"clipboard", Wrap(ErrCodeClipboardUnavailable, errors.New("no xclip"), "copy"), true},
		{"invalid date", New(ErrCodeInvalidDate, "future"), false},
		{"plain", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recoverable(tt.err); got != tt.want {
				t.Errorf("Recoverable() = %v, want %v", got, tt.want)
			}
		})
	}
}
