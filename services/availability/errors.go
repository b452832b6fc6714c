package availability

import (
	"errors"
	"fmt"
)

// Engine error codes. Callers branch on these, not on message text.
const (
	CodeDataUnavailable = "dataUnavailable"
	CodeSlotUnavailable = "slotUnavailable"
	CodePastDate        = "pastDate"
	CodeInvalidSchedule = "invalidSchedule"
)

// Error is a typed engine error with a stable code.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewDataUnavailable wraps a store failure. The resolver fails closed with
// this rather than returning a misleading "all available" result.
func NewDataUnavailable(err error) error {
	return &Error{Code: CodeDataUnavailable, Message: "could not load schedule data", Err: err}
}

// NewSlotUnavailable reports a blocked or already-booked slot.
func NewSlotUnavailable(msg string) error {
	return &Error{Code: CodeSlotUnavailable, Message: msg}
}

// NewPastDate reports a requested slot that is not strictly in the future.
func NewPastDate(msg string) error {
	return &Error{Code: CodePastDate, Message: msg}
}

// NewInvalidSchedule reports malformed leave data.
func NewInvalidSchedule(msg string, err error) error {
	return &Error{Code: CodeInvalidSchedule, Message: msg, Err: err}
}

// CodeOf returns the engine error code carried by err, or "" if err is not
// an engine error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
