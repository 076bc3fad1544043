// Package tasks holds the task model, the in-memory task list and the
// line-based persistence used to save it.
package tasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dohr-michael/sora/internal/temporal"
)

// ErrInvalidFormat marks task construction and decoding failures.
var ErrInvalidFormat = errors.New("invalid task format")

// Kind identifies the task variant.
type Kind byte

const (
	KindTodo     Kind = 'T'
	KindDeadline Kind = 'D'
	KindEvent    Kind = 'E'
)

func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("Kind(%q)", byte(k))
	}
}

// Letter returns the one-letter tag used in display and storage lines.
func (k Kind) Letter() string { return string(k) }

// Task is a todo, a deadline or an event. Due is only meaningful for
// deadlines; Start and End only for events.
type Task struct {
	Kind        Kind
	Description string
	Done        bool
	Due         temporal.Value
	Start       temporal.Value
	End         temporal.Value
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, msg)
}

func checkDescription(description string) (string, error) {
	d := strings.TrimSpace(description)
	if d == "" {
		return "", invalid("Oops! The task name is missing")
	}
	if strings.Contains(d, fieldSeparator) {
		return "", invalid("Oops! The task name cannot contain '|'")
	}
	return d, nil
}

// NewTodo creates a plain task.
func NewTodo(description string) (*Task, error) {
	d, err := checkDescription(description)
	if err != nil {
		return nil, err
	}
	return &Task{Kind: KindTodo, Description: d}, nil
}

// NewDeadline creates a task due at the given time.
func NewDeadline(description string, due temporal.Value) (*Task, error) {
	d, err := checkDescription(description)
	if err != nil {
		return nil, err
	}
	return &Task{Kind: KindDeadline, Description: d, Due: due}, nil
}

// NewEvent creates a task spanning start to end. No ordering between the
// two is enforced here; see InOrder.
func NewEvent(description string, start, end temporal.Value) (*Task, error) {
	d, err := checkDescription(description)
	if err != nil {
		return nil, err
	}
	return &Task{Kind: KindEvent, Description: d, Start: start, End: end}, nil
}

// MarkDone flags the task as completed. Calling it again is a no-op.
func (t *Task) MarkDone() { t.Done = true }

// MarkUndone clears the completed flag. Calling it again is a no-op.
func (t *Task) MarkUndone() { t.Done = false }

// InOrder reports whether an event ends no earlier than it starts.
// Always true for other kinds.
func (t *Task) InOrder() bool {
	if t.Kind != KindEvent {
		return true
	}
	return !t.End.Before(t.Start)
}

// OccursOn reports whether a deadline is due, or an event starts or ends,
// on the same calendar day as target. Todos never occur on a date.
func (t *Task) OccursOn(target temporal.Value) bool {
	switch t.Kind {
	case KindDeadline:
		return t.Due.SameDate(target)
	case KindEvent:
		return t.Start.SameDate(target) || t.End.SameDate(target)
	default:
		return false
	}
}

func (t *Task) statusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// Display renders the task for humans, e.g.
// "[D][ ] submit (by: Jan 22 2026 23:59)".
func (t *Task) Display() string {
	base := fmt.Sprintf("[%s][%s] %s", t.Kind.Letter(), t.statusIcon(), t.Description)
	switch t.Kind {
	case KindDeadline:
		return base + " (by: " + t.Due.Display() + ")"
	case KindEvent:
		return base + " (from: " + t.Start.Display() + " to: " + t.End.Display() + ")"
	default:
		return base
	}
}

// String implements fmt.Stringer using the display form.
func (t *Task) String() string { return t.Display() }

// StorageLine renders the pipe-delimited persisted form, e.g.
// "E | 1 | camp | 2026-01-22 | 2026-01-24 18:00".
func (t *Task) StorageLine() string {
	flag := "0"
	if t.Done {
		flag = "1"
	}
	fields := []string{t.Kind.Letter(), flag, t.Description}
	switch t.Kind {
	case KindDeadline:
		fields = append(fields, t.Due.StorageToken())
	case KindEvent:
		fields = append(fields, t.Start.StorageToken(), t.End.StorageToken())
	}
	return strings.Join(fields, " "+fieldSeparator+" ")
}
