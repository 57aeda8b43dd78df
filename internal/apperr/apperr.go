// Package apperr defines the error taxonomy surfaced to GraphQL clients.
// Every resolver failure is one of these; raw storage errors never cross
// the resolver boundary.
package apperr

import "errors"

const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeConflict        = "CONFLICT"
	CodeStorageFailure  = "STORAGE_FAILURE"
)

// Error carries a machine-readable code and a short user-readable message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions puts the code into the GraphQL error "extensions" object
// (picked up by graphql-go through its ResolverError interface).
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func InvalidArgument(msg string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func Storage(msg string) *Error {
	return &Error{Code: CodeStorageFailure, Message: msg}
}

// CodeOf extracts the taxonomy code from err, or "" for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
