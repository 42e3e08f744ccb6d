package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidMode, "unknown mode %q", "polar"), `INVALID_MODE: unknown mode "polar"`},
		{Wrap(ErrCodeNetwork, cause, "fetch %s", "life.nwk"), "NETWORK_ERROR: fetch life.nwk: connection refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("eof")
	err := Wrap(ErrCodeParse, cause, "parse")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"direct", New(ErrCodeParse, "x"), ErrCodeParse},
		{"outermost wins", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeNetwork},
		{"through fmt", fmt.Errorf("load: %w", New(ErrCodeNotFound, "x")), ErrCodeNotFound},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
			if tt.want != "" && !Is(tt.err, tt.want) {
				t.Errorf("Is(err, %q) = false", tt.want)
			}
			if Is(tt.err, ErrCodeTimeout) {
				t.Error("Is(err, TIMEOUT) = true")
			}
		})
	}
}

func TestUserMessagePlain(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "empty tree")); got != "empty tree" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "boom" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestUserMessageNested(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{Wrap(ErrCodeNetwork, errors.New("connection refused"), "fetch tree"), "fetch tree: connection refused"},
		{Wrap(ErrCodeParse, New(ErrCodeInvalidInput, "offset 4"), "parse life.nwk"), "parse life.nwk: offset 4"},
		{fmt.Errorf("render: %w", New(ErrCodeInvalidMode, "unknown mode")), "unknown mode"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage() = %q, want %q", got, tt.want)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidInput, 400},
		{ErrCodeInvalidMode, 400},
		{ErrCodeInvalidSource, 400},
		{ErrCodeParse, 422},
		{ErrCodeNotFound, 404},
		{ErrCodeNetwork, 502},
		{ErrCodeTimeout, 504},
		{ErrCodeUnsupported, 501},
		{ErrCodeInvalidConfig, 500},
		{ErrCodeInternal, 500},
		{"", 500},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%q.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{New(ErrCodeParse, "bad tree"), ExitUsage},
		{fmt.Errorf("render: %w", New(ErrCodeInvalidMode, "mode")), ExitUsage},
		{New(ErrCodeInvalidConfig, "width"), ExitUsage},
		{New(ErrCodeNetwork, "fetch"), ExitFailure},
		{errors.New("plain"), ExitFailure},
		{fmt.Errorf("fetch: %w", context.Canceled), ExitInterrupt},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
