// Package apperror defines the error taxonomy shared by the services and the
// HTTP layer. Every error surfaced to a caller names the identifiers it is
// about; store failures carry their cause for logging only.
package apperror

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindStateConflict    Kind = "state_conflict"
	KindInvalidReference Kind = "invalid_reference"
	KindUnauthenticated  Kind = "unauthenticated"
	KindForbidden        Kind = "forbidden"
	KindStore            Kind = "store"
)

// Conflict names an entity whose current state violated a precondition.
type Conflict struct {
	ID     string
	Status string
}

type Error struct {
	Kind      Kind
	Message   string
	IDs       []string
	Conflicts []Conflict
	Found     []string
	Missing   []string
	// Batch marks a not-found error about identifiers listed in a request
	// body rather than addressed by the request itself.
	Batch     bool
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationIDs is a validation error about specific identifiers.
func ValidationIDs(ids []string, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), IDs: ids}
}

func NotFound(ids []string, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), IDs: ids, Missing: ids}
}

// NotFoundInBatch reports which identifiers of a batch are missing and which
// were found.
func NotFoundInBatch(found, missing []string, format string, args ...any) *Error {
	if found == nil {
		found = []string{}
	}

	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf(format, args...),
		IDs:     missing,
		Found:   found,
		Missing: missing,
		Batch:   true,
	}
}

// StateConflict builds an error whose message lists every conflict as
// "id (status)" followed by the supplied suffix.
func StateConflict(conflicts []Conflict, suffix string) *Error {
	parts := make([]string, len(conflicts))
	ids := make([]string, len(conflicts))

	for i, c := range conflicts {
		ids[i] = c.ID
		parts[i] = fmt.Sprintf("%s (%s)", c.ID, c.Status)
	}

	return &Error{
		Kind:      KindStateConflict,
		Message:   strings.Join(parts, ", ") + " " + suffix,
		IDs:       ids,
		Conflicts: conflicts,
	}
}

func InvalidReference(id string, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidReference, Message: fmt.Sprintf(format, args...), IDs: []string{id}}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Store wraps an underlying failure. Deadline and cancellation errors are
// marked retryable: nothing was committed and the whole operation may be
// submitted again.
func Store(op string, err error) *Error {
	return &Error{
		Kind:      KindStore,
		Message:   op,
		Retryable: errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled),
		Err:       err,
	}
}

// Wrap returns err unchanged when it already belongs to the taxonomy and
// otherwise classifies it as a store failure of op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	return Store(op, err)
}

// KindOf reports the taxonomy kind of err, or KindStore for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindStore
}

func Is(err error, kind Kind) bool {
	var appErr *Error

	return errors.As(err, &appErr) && appErr.Kind == kind
}
