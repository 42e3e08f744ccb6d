// Package errors carries machine-readable codes on treeoflife errors.
//
// Every failure the CLI or the server reports to a user is an [*Error]
// whose [Code] decides both the HTTP status and the process exit status:
//
//	err := errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", mode)
//	if errors.Is(err, errors.ErrCodeInvalidMode) {
//	    ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeParse, perr, "parse %s", source)
//	fmt.Println(errors.UserMessage(err)) // "parse life.nwk: newick: offset 4 ..."
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidMode   Code = "INVALID_MODE"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeParse marks malformed tree notation.
	ErrCodeParse Code = "PARSE_ERROR"

	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Exit statuses returned by [ExitCode].
const (
	ExitFailure   = 1
	ExitUsage     = 2
	ExitInterrupt = 130
)

type codeInfo struct {
	status int // HTTP
	exit   int // process
}

var codes = map[Code]codeInfo{
	ErrCodeInvalidInput:  {http.StatusBadRequest, ExitUsage},
	ErrCodeInvalidFormat: {http.StatusBadRequest, ExitUsage},
	ErrCodeInvalidMode:   {http.StatusBadRequest, ExitUsage},
	ErrCodeInvalidSource: {http.StatusBadRequest, ExitUsage},
	ErrCodeInvalidConfig: {http.StatusInternalServerError, ExitUsage},
	ErrCodeParse:         {http.StatusUnprocessableEntity, ExitUsage},
	ErrCodeNotFound:      {http.StatusNotFound, ExitFailure},
	ErrCodeNetwork:       {http.StatusBadGateway, ExitFailure},
	ErrCodeTimeout:       {http.StatusGatewayTimeout, ExitFailure},
	ErrCodeUnsupported:   {http.StatusNotImplemented, ExitFailure},
}

func (c Code) info() codeInfo {
	if i, ok := codes[c]; ok {
		return i
	}
	return codeInfo{http.StatusInternalServerError, ExitFailure}
}

// HTTPStatus is the status the server answers with for c. Unknown codes
// map to 500.
func (c Code) HTTPStatus() int { return c.info().status }

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err for people: the messages of nested *Errors
// joined by ": ", without codes.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// ExitCode maps err to a process exit status: 0 for nil, 130 after an
// interrupt, 2 for bad input and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return ExitInterrupt
	}
	return GetCode(err).info().exit
}
