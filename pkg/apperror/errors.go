package apperror

import (
	"errors"
)

// Kind classifies failures surfaced by the account lifecycle
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindNotFound
	KindInvalidToken
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindInvalidToken:
		return "invalid_token"
	default:
		return "unknown"
	}
}

// Sentinels usable with errors.Is against any *Error of the same kind.
var (
	ErrValidation     = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrConflict       = &Error{Kind: KindConflict, Message: "conflict"}
	ErrAuthentication = &Error{Kind: KindAuthentication, Message: MsgUserNotFound}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidToken   = &Error{Kind: KindInvalidToken, Message: "invalid token"}
)

// MsgUserNotFound is the only message an authentication failure ever carries.
const MsgUserNotFound = "User not found"

// Error is a typed failure. Fields carries per-field validation details.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Conflict(message string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: cause}
}

// Authentication returns the uniform credential failure. The cause is kept
// for logging only; the message never varies.
func Authentication(cause error) *Error {
	return &Error{Kind: KindAuthentication, Message: MsgUserNotFound, Err: cause}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidToken(cause error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "invalid token", Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
