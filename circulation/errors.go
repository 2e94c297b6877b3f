package circulation

import (
	"errors"
	"fmt"
)

// Kind classifies a rejected operation. Rejections are deterministic policy decisions and are never retried.
type Kind string

const (
	// KindNotFound is used when a user, book, reservation, loan or fine is missing.
	KindNotFound Kind = "NOT_FOUND"

	// KindForbidden is used for policy violations like restrictions, unpaid fines or the borrow limit.
	KindForbidden Kind = "FORBIDDEN"

	// KindBadRequest is used for invalid state transition attempts.
	KindBadRequest Kind = "BAD_REQUEST"
)

var (
	// ErrNotFound matches every RejectionError of KindNotFound via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrForbidden matches every RejectionError of KindForbidden via errors.Is.
	ErrForbidden = errors.New("forbidden")

	// ErrBadRequest matches every RejectionError of KindBadRequest via errors.Is.
	ErrBadRequest = errors.New("bad request")

	// ErrRecordNotFound is returned by Tx implementations when a lookup has no result.
	ErrRecordNotFound = errors.New("record not found")

	// ErrTransactionFailed is returned when beginning or committing a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrQueryFailed is returned when a read against the store fails.
	ErrQueryFailed = errors.New("query failed")

	// ErrWriteFailed is returned when an insert or update against the store fails.
	ErrWriteFailed = errors.New("write failed")

	// ErrBuildingQueryFailed is returned when a SQL statement could not be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrNilDatabaseConnection is returned when a store is constructed without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
)

// RejectionError is a rejected operation with a human-readable reason.
// The message is meant to be surfaced verbatim to the member or administrator.
type RejectionError struct {
	Kind    Kind
	Message string
}

// Error returns the human-readable reason.
func (e *RejectionError) Error() string {
	return e.Message
}

// Is lets errors.Is match the kind sentinels ErrNotFound, ErrForbidden and ErrBadRequest.
func (e *RejectionError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	default:
		return false
	}
}

// NotFound builds a KindNotFound rejection.
func NotFound(format string, args ...any) error {
	return &RejectionError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a KindForbidden rejection.
func Forbidden(format string, args ...any) error {
	return &RejectionError{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// BadRequest builds a KindBadRequest rejection.
func BadRequest(format string, args ...any) error {
	return &RejectionError{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of a rejection, or an empty Kind for infrastructure errors.
func KindOf(err error) Kind {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Kind
	}

	return ""
}

// IsRejection reports whether err is a policy or state-transition rejection.
func IsRejection(err error) bool {
	return KindOf(err) != ""
}
