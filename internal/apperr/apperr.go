// Package apperr carries the error taxonomy shared by services and handlers.
// Callers switch on the numeric classification, never on message text.
package apperr

import "errors"

const (
	CodeNoAction     = 200
	CodeInvalidInput = 400
	CodeUnauthorized = 401
	CodeNotFound     = 404
	CodeConflict     = 409
)

type Error struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func InvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NoAction marks a benign request missing an optional discriminator. It is
// answered as an empty success, not surfaced as a failure.
func NoAction(message string) *Error {
	return &Error{Code: CodeNoAction, Message: message}
}

// As unwraps err into *Error when it belongs to the taxonomy.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
