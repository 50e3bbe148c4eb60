package domain

import (
	"errors"
	"fmt"
)

// Kind identifies an error class independent of its message. Handlers use it
// as the "code" field of error payloads.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindInvalidWindow    Kind = "invalid_window"
	KindInvalidDate      Kind = "invalid_date"
	KindInvalidSeat      Kind = "invalid_seat"
	KindInvalidInput     Kind = "invalid_input"
	KindConflict         Kind = "conflict"
	KindAlreadyCancelled Kind = "already_cancelled"
	KindInternal         Kind = "internal_error"
)

type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource != "" && e.ID != "":
		return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return "not found"
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError is returned before any ledger mutation. Kind is one of
// KindInvalidWindow, KindInvalidDate, KindInvalidSeat or KindInvalidInput.
type ValidationError struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

func InvalidWindow(window string) ValidationError {
	return ValidationError{Kind: KindInvalidWindow, Field: "time_slot", Msg: fmt.Sprintf("%q is not a window of this zone", window)}
}

func InvalidDate(msg string) ValidationError {
	return ValidationError{Kind: KindInvalidDate, Field: "booking_date", Msg: msg}
}

func InvalidSeat(seat, msg string) ValidationError {
	return ValidationError{Kind: KindInvalidSeat, Field: "seat_number", Msg: fmt.Sprintf("%q %s", seat, msg)}
}

func InvalidInput(field, msg string) ValidationError {
	return ValidationError{Kind: KindInvalidInput, Field: field, Msg: msg}
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type AlreadyCancelledError struct {
	CustomerID string
}

func (e AlreadyCancelledError) Error() string {
	if e.CustomerID == "" {
		return "booking already cancelled"
	}
	return fmt.Sprintf("booking %s already cancelled", e.CustomerID)
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsAlreadyCancelled(err error) bool {
	var target AlreadyCancelledError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// KindOf classifies err. Unknown errors are reported as KindInternal.
func KindOf(err error) Kind {
	var v ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &v):
		if v.Kind == "" {
			return KindInvalidInput
		}
		return v.Kind
	case IsNotFound(err):
		return KindNotFound
	case IsConflict(err):
		return KindConflict
	case IsAlreadyCancelled(err):
		return KindAlreadyCancelled
	default:
		return KindInternal
	}
}
