// Package contract defines the request and response shapes of the HTTP API
// and the error codes services report across that boundary.
package contract

import "fmt"

type ErrorCode string

const (
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrInvalidBody  ErrorCode = "INVALID_BODY"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrConflict     ErrorCode = "CONFLICT"
	ErrInternal     ErrorCode = "INTERNAL"
)

// Error is the typed error services return to the transport layer.
type Error struct {
	Code    ErrorCode
	Message string

	// Fields holds per-field validation detail for INVALID_BODY errors.
	Fields map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewValidationError reports an invalid request body with field detail.
func NewValidationError(fields map[string]string) *Error {
	return &Error{Code: ErrInvalidBody, Message: "Invalid body", Fields: fields}
}

// User-facing messages. These exact strings are shown in the client, so
// tests pin them.
const (
	// DailyLimitMessage is returned with a 200 when the generative quota is
	// spent. Hitting the cap is an expected outcome, not an error.
	DailyLimitMessage = "You've reached your 5 AI suggestions for today. Try again tomorrow."

	// SuggestionUsedMessage covers both a missing suggestion and one that
	// was already decided, so the API does not reveal which.
	SuggestionUsedMessage = "Suggestion not found or already used"

	// ConfirmedMessage acknowledges a suggestion turned into a task.
	ConfirmedMessage = "Added. It's in your Tasks list."
)
