package tasks

import (
	"fmt"
	"strings"

	"github.com/dohr-michael/sora/internal/temporal"
)

// fieldSeparator splits the fields of a storage line.
const fieldSeparator = "|"

// CorruptLine describes a storage line that could not be decoded.
type CorruptLine struct {
	Line int // 1-based
	Text string
	Err  error
}

func (c CorruptLine) Error() string {
	return fmt.Sprintf("line %d: %v", c.Line, c.Err)
}

// DecodeLine parses one storage line of the form
// "<T|D|E> | <0|1> | <description>[ | <token>[ | <token>]]".
func DecodeLine(line string) (*Task, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < 3 {
		return nil, invalid("Hmm... this record is too short")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	kind, flag, name := parts[0], parts[1], parts[2]

	if len(kind) != 1 {
		return nil, invalid("Oops! Unknown task type")
	}

	var (
		t   *Task
		err error
	)
	switch Kind(kind[0]) {
	case KindTodo:
		t, err = NewTodo(name)
	case KindDeadline:
		if len(parts) < 4 || parts[3] == "" {
			return nil, invalid("Oops! Deadline requires /by and name")
		}
		due, perr := temporal.Parse(parts[3])
		if perr != nil {
			return nil, invalid(perr.Error())
		}
		t, err = NewDeadline(name, due)
	case KindEvent:
		if len(parts) < 5 || parts[3] == "" || parts[4] == "" {
			return nil, invalid("Oops! Event requires /from, /to and name")
		}
		start, perr := temporal.Parse(parts[3])
		if perr != nil {
			return nil, invalid(perr.Error())
		}
		end, perr := temporal.Parse(parts[4])
		if perr != nil {
			return nil, invalid(perr.Error())
		}
		t, err = NewEvent(name, start, end)
	default:
		return nil, invalid("Oops! Unknown task type")
	}
	if err != nil {
		return nil, err
	}

	switch flag {
	case "0":
		t.MarkUndone()
	case "1":
		t.MarkDone()
	default:
		return nil, invalid("Oops! Unknown completion status")
	}
	return t, nil
}

// LoadTasks decodes storage lines in order. Corrupted lines are skipped and
// reported; they never stop the remaining lines from loading. Blank lines
// are ignored.
func LoadTasks(lines []string) ([]*Task, []CorruptLine) {
	var (
		out     []*Task
		corrupt []CorruptLine
	)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := DecodeLine(line)
		if err != nil {
			corrupt = append(corrupt, CorruptLine{Line: i + 1, Text: line, Err: err})
			continue
		}
		out = append(out, t)
	}
	return out, corrupt
}

// SerializeTasks renders each task as a storage line.
func SerializeTasks(list []*Task) []string {
	lines := make([]string, 0, len(list))
	for _, t := range list {
		lines = append(lines, t.StorageLine())
	}
	return lines
}
