package domain

import "fmt"

// Code is a machine-readable error code. The set is closed: every failure the
// game core can produce maps to exactly one code, and the web layer maps each
// code to an HTTP status.
type Code string

const (
	CodeUnknown         Code = "UNKNOWN"
	CodeGameNotFound    Code = "GAME_NOT_FOUND"
	CodeUserNotFound    Code = "USER_NOT_FOUND"
	CodeRuleViolation   Code = "RULE_VIOLATION"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotYourTurn     Code = "NOT_YOUR_TURN"
	CodeAccessDenied    Code = "ACCESS_DENIED"
	CodeInvalidCard     Code = "INVALID_CARD"
	CodeConflict        Code = "CONFLICT"
	CodeUserExists      Code = "USER_EXISTS"
	CodeBadCredentials  Code = "BAD_CREDENTIALS"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
)

// Error is the domain error type. Two Errors match under errors.Is when their
// codes are equal, so callers test for kinds, not instances.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a domain error with a code and message.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates a domain error that wraps an underlying cause.
func WrapError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// ErrCode extracts the domain code from err, or CodeUnknown for errors
// originating outside the core.
func ErrCode(err error) Code {
	var e *Error
	for err != nil {
		var ok bool
		if e, ok = err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return CodeUnknown
		}
		err = u.Unwrap()
	}
	return CodeUnknown
}

func ErrGameNotFound(id int64) *Error {
	return NewError(CodeGameNotFound, fmt.Sprintf("game not found: %d", id))
}

func ErrUserNotFound(id int64) *Error {
	return NewError(CodeUserNotFound, fmt.Sprintf("user not found: %d", id))
}

func ErrRuleViolation(message string) *Error {
	return NewError(CodeRuleViolation, message)
}

func ErrInvalidState(gameID int64, status GameStatus) *Error {
	return NewError(CodeInvalidState, fmt.Sprintf("game %d is in invalid state: %s", gameID, status))
}

func ErrNotYourTurn(gameID, playerID int64) *Error {
	return NewError(CodeNotYourTurn, fmt.Sprintf("not player %d's turn in game %d", playerID, gameID))
}

func ErrAccessDenied(message string) *Error {
	return NewError(CodeAccessDenied, message)
}

func ErrInvalidCard(name string) *Error {
	return NewError(CodeInvalidCard, "invalid card: "+name)
}

func ErrConflict(message string) *Error {
	return NewError(CodeConflict, message)
}

func ErrUserExists(login string) *Error {
	return NewError(CodeUserExists, "user with login "+login+" already exists")
}

func ErrBadCredentials() *Error {
	return NewError(CodeBadCredentials, "invalid login or password")
}

func ErrUnauthenticated(message string) *Error {
	return NewError(CodeUnauthenticated, message)
}
