// Package apperror defines the application's error taxonomy.
//
// Services return *AppError values wrapping one of the sentinel errors
// below; the HTTP layer maps sentinels to status codes in exactly one
// place (handler/response.go) using errors.Is. The Message field is the
// client-facing text and is safe to send on the wire.
package apperror

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // client-facing message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation returns a 400-class error whose message names the missing or
// invalid field ("Missing name", "Parent is not a folder", ...).
func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

// Unauthorized returns the uniform 401 error. The message is deliberately
// generic: an expired token, an unknown token and a wrong password are
// indistinguishable to the client.
func Unauthorized() *AppError {
	return &AppError{Err: ErrUnauthorized, Message: "Unauthorized"}
}

// NotFound covers both absent records and records the caller is not
// allowed to see. The two cases are deliberately merged.
func NotFound() *AppError {
	return &AppError{Err: ErrNotFound, Message: "Not found"}
}

// Conflict reports a duplicate on a unique field.
func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}
