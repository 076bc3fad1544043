package command

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dohr-michael/sora/internal/events"
	"github.com/dohr-michael/sora/internal/search"
	"github.com/dohr-michael/sora/internal/tasks"
)

// OutcomeKind tells the presentation layer how to show an Outcome.
type OutcomeKind int

const (
	OutcomeInfo OutcomeKind = iota
	OutcomeError
	OutcomeExit
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeError:
		return "error"
	case OutcomeExit:
		return "exit"
	default:
		return "info"
	}
}

// Outcome is the result of executing one command.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

const (
	msgFarewell     = "Oh, leaving already? Hope you have a productive day!"
	msgNoTasks      = "Hmm... it looks like you haven't added any tasks yet\nWhy not start adding a new task?"
	msgTaskNotFound = "Whoops! That task does not exist.\nDouble-check the number and try again"
)

// Executor applies commands to the task list it owns, persisting after
// every mutation.
type Executor struct {
	list      *tasks.List
	store     tasks.Store
	bus       *events.Bus
	threshold float64
	logger    *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithBus publishes task events on bus.
func WithBus(bus *events.Bus) Option {
	return func(e *Executor) { e.bus = bus }
}

// WithThreshold sets the fuzzy search threshold.
func WithThreshold(threshold float64) Option {
	return func(e *Executor) { e.threshold = threshold }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) { e.logger = logger }
}

// NewExecutor creates an Executor over list. A nil store disables
// persistence.
func NewExecutor(list *tasks.List, store tasks.Store, opts ...Option) *Executor {
	e := &Executor{
		list:      list,
		store:     store,
		threshold: search.DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List returns the task list the executor owns.
func (e *Executor) List() *tasks.List {
	return e.list
}

// Execute runs cmd and describes the result. Failures come back as
// OutcomeError; nothing here ends the process.
func (e *Executor) Execute(cmd Command) Outcome {
	return e.execute(cmd, "")
}

// execute runs cmd; input is the raw line it came from, if known, and is
// only used to describe rejections.
func (e *Executor) execute(cmd Command, input string) Outcome {
	switch c := cmd.(type) {
	case Exit:
		return Outcome{Kind: OutcomeExit, Message: msgFarewell}
	case ListAll:
		return e.listAll()
	case AddTask:
		if c.Task == nil {
			return e.fail(input, invalidFormat("Oops! The task name is missing"))
		}
		return e.addTask(c.Task)
	case MarkDone:
		return e.mark(c.Index, true, input)
	case MarkUndone:
		return e.mark(c.Index, false, input)
	case Delete:
		return e.delete(c.Index, input)
	case Find:
		return e.find(c.Keyword)
	case OnDate:
		return e.onDate(c)
	default:
		return e.fail(input, unknownCommand())
	}
}

// Reject turns a parse failure for input into an error outcome and records
// it on the bus.
func (e *Executor) Reject(input string, err error) Outcome {
	return e.fail(input, err)
}

func (e *Executor) fail(input string, err error) Outcome {
	kind := InvalidFormat
	if k, ok := KindOf(err); ok {
		kind = k
	}
	e.publish(events.CommandRejectedPayload{Input: input, Kind: kind.String(), Error: err.Error()})
	return Outcome{Kind: OutcomeError, Message: err.Error()}
}

func (e *Executor) listAll() Outcome {
	if e.list.Len() == 0 {
		return Outcome{Kind: OutcomeInfo, Message: msgNoTasks}
	}
	var sb strings.Builder
	sb.WriteString("Here are your tasks:")
	for i, t := range e.list.All() {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, t.Display())
	}
	return Outcome{Kind: OutcomeInfo, Message: sb.String()}
}

func (e *Executor) addTask(t *tasks.Task) Outcome {
	index := e.list.Add(t)
	msg := fmt.Sprintf("Task added! Here's what I've recorded:\n  %s\nAll set! You now have %s in your list",
		t.Display(), countNoun(e.list.Len()))
	e.publish(events.TaskAddedPayload{TaskPayload: e.payload(t, index)})
	return e.persist(msg)
}

func (e *Executor) mark(index int, done bool, input string) Outcome {
	t := e.list.Get(index)
	if t == nil {
		return e.fail(input, invalidFormat(msgTaskNotFound))
	}

	var msg string
	if done {
		t.MarkDone()
		msg = "Task Completed! You're making progress\n  " + t.Display()
		e.publish(events.TaskDonePayload{TaskPayload: e.payload(t, index)})
	} else {
		t.MarkUndone()
		msg = "Okay! The task is still pending to be completed\n  " + t.Display()
		e.publish(events.TaskUndonePayload{TaskPayload: e.payload(t, index)})
	}
	return e.persist(msg)
}

func (e *Executor) delete(index int, input string) Outcome {
	t := e.list.Remove(index)
	if t == nil {
		return e.fail(input, invalidFormat(msgTaskNotFound))
	}
	msg := fmt.Sprintf("Got it! Task removed:\n  %s\nAll set! You now have %s in your list",
		t.Display(), countNoun(e.list.Len()))
	e.publish(events.TaskDeletedPayload{TaskPayload: e.payload(t, index)})
	return e.persist(msg)
}

func (e *Executor) find(keyword string) Outcome {
	all := e.list.All()
	texts := make([]string, len(all))
	for i, t := range all {
		texts[i] = strings.ToLower(t.Display())
	}

	matcher := search.NewMatcher(keyword, e.threshold)
	hits := matcher.FindMatches(texts)
	if len(hits) == 0 {
		return Outcome{Kind: OutcomeInfo, Message: fmt.Sprintf(
			"Hmm... No tasks found matching %s yet\nTry refining your search", matcher.Keyword())}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are the tasks I found matching %s:", matcher.Keyword())
	for _, i := range hits {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, all[i].Display())
	}
	return Outcome{Kind: OutcomeInfo, Message: sb.String()}
}

func (e *Executor) onDate(c OnDate) Outcome {
	var sb strings.Builder
	found := 0
	for i, t := range e.list.All() {
		if !t.OccursOn(c.Target) {
			continue
		}
		if found == 0 {
			fmt.Fprintf(&sb, "Here are your tasks on %s:", c.Target.Display())
		}
		found++
		fmt.Fprintf(&sb, "\n%d. %s", i+1, t.Display())
	}
	if found == 0 {
		return Outcome{Kind: OutcomeInfo, Message: fmt.Sprintf(
			"Hmm... No tasks found on %s.\nLooks like a free day!", c.Target.Display())}
	}
	return Outcome{Kind: OutcomeInfo, Message: sb.String()}
}

// persist saves the current snapshot. The in-memory mutation stands even
// when saving fails; the failure is appended to the report.
func (e *Executor) persist(msg string) Outcome {
	if e.store == nil {
		return Outcome{Kind: OutcomeInfo, Message: msg}
	}
	if err := e.store.Save(e.list.All()); err != nil {
		e.logger.Error("failed to save tasks", "location", e.store.Location(), "error", err)
		return Outcome{Kind: OutcomeError, Message: msg + "\nOops! Failed to save tasks: " + err.Error()}
	}
	return Outcome{Kind: OutcomeInfo, Message: msg}
}

func (e *Executor) publish(p events.EventPayload) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.NewTypedEvent(p))
}

func (e *Executor) payload(t *tasks.Task, index int) events.TaskPayload {
	return events.TaskPayload{
		Kind:        t.Kind.String(),
		Index:       index,
		Count:       e.list.Len(),
		Description: t.Description,
		StorageLine: t.StorageLine(),
	}
}

func countNoun(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
