// Package command turns command lines into typed commands and executes
// them against the task list.
package command

import (
	"github.com/dohr-michael/sora/internal/tasks"
	"github.com/dohr-michael/sora/internal/temporal"
)

// Command is one of Exit, ListAll, AddTask, MarkDone, MarkUndone, Delete,
// Find or OnDate. The set is closed: the marker method is unexported.
type Command interface {
	command()
}

// Exit ends the session.
type Exit struct{}

// ListAll shows every task.
type ListAll struct{}

// AddTask appends a new task.
type AddTask struct {
	Task *tasks.Task
}

// MarkDone marks the task at the zero-based Index as completed.
type MarkDone struct {
	Index int
}

// MarkUndone clears the completed flag of the task at Index.
type MarkUndone struct {
	Index int
}

// Delete removes the task at Index.
type Delete struct {
	Index int
}

// Find searches task descriptions for a lower-cased keyword.
type Find struct {
	Keyword string
}

// OnDate lists deadlines and events falling on Target's calendar date.
type OnDate struct {
	Target temporal.Value
}

func (Exit) command()       {}
func (ListAll) command()    {}
func (AddTask) command()    {}
func (MarkDone) command()   {}
func (MarkUndone) command() {}
func (Delete) command()     {}
func (Find) command()       {}
func (OnDate) command()     {}

// Name returns the keyword that produces c.
func Name(c Command) string {
	switch c.(type) {
	case Exit:
		return keywordBye
	case ListAll:
		return keywordList
	case AddTask:
		return "add"
	case MarkDone:
		return keywordMark
	case MarkUndone:
		return keywordUnmark
	case Delete:
		return keywordDelete
	case Find:
		return keywordFind
	case OnDate:
		return keywordOn
	default:
		return "unknown"
	}
}
