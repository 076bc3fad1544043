package command

import (
	"errors"
	"fmt"
)

// ErrorKind classifies user-facing command failures.
type ErrorKind int

const (
	// InvalidFormat covers malformed or incomplete command text,
	// out-of-range task numbers and unparseable dates.
	InvalidFormat ErrorKind = iota + 1
	// UnknownCommand means the leading keyword is not recognised.
	UnknownCommand
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid_format"
	case UnknownCommand:
		return "unknown_command"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a recoverable command failure carrying a message for the user.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

const unknownCommandMessage = "Oops! I didn't recognize that command\n Please enter a valid command"

func invalidFormat(format string, args ...any) *Error {
	return &Error{Kind: InvalidFormat, Message: fmt.Sprintf(format, args...)}
}

func unknownCommand() *Error {
	return &Error{Kind: UnknownCommand, Message: unknownCommandMessage}
}

// KindOf returns the kind of a command error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}
