package command

import (
	"strings"
	"testing"

	"github.com/dohr-michael/sora/internal/events"
	"github.com/dohr-michael/sora/internal/tasks"
)

func TestInterpreterSession(t *testing.T) {
	store := &memStore{}
	in := NewInterpreter(NewParser(ParserOptions{}), NewExecutor(tasks.NewList(nil), store))

	steps := []struct {
		line string
		kind OutcomeKind
		has  string
	}{
		{"list", OutcomeInfo, "haven't added any tasks"},
		{"todo read book", OutcomeInfo, "1 task in your list"},
		{"deadline submit /by 2026-01-22 23:59", OutcomeInfo, "[D][ ] submit (by: Jan 22 2026 23:59)"},
		{"mark 2", OutcomeInfo, "[D][X] submit"},
		{"mark 3", OutcomeError, "does not exist"},
		{"listing", OutcomeError, "didn't recognize"},
		{"todo", OutcomeError, "task name is missing"},
		{"find BOOK", OutcomeInfo, "1. [T][ ] read book"},
		{"on 2026-01-22", OutcomeInfo, "2. [D][X] submit"},
		{"delete 1", OutcomeInfo, "1 task in your list"},
		{"bye", OutcomeExit, "leaving already"},
	}
	for _, s := range steps {
		out := in.Handle(s.line)
		if out.Kind != s.kind {
			t.Errorf("%q: kind %v, want %v (%q)", s.line, out.Kind, s.kind, out.Message)
		}
		if !strings.Contains(out.Message, s.has) {
			t.Errorf("%q: message %q should contain %q", s.line, out.Message, s.has)
		}
	}

	want := "D | 1 | submit | 2026-01-22 23:59"
	if last := store.last(); len(last) != 1 || last[0] != want {
		t.Errorf("saved: %v, want [%s]", last, want)
	}
}

func TestInterpreterRecordsRejectedInput(t *testing.T) {
	bus := events.NewBus("sess_test")
	var history []events.Event
	bus.Subscribe(func(e events.Event) { history = append(history, e) })
	exec := NewExecutor(tasks.NewList(nil), nil, WithBus(bus))
	in := NewInterpreter(NewParser(ParserOptions{}), exec)

	in.Handle("unmark 1")
	in.Handle("hello there")

	if len(history) != 2 {
		t.Fatalf("expected 2 events, got %d", len(history))
	}
	first, _ := events.ExtractPayload[events.CommandRejectedPayload](history[0])
	if first.Input != "unmark 1" || first.Kind != "invalid_format" {
		t.Errorf("first: %+v", first)
	}
	second, _ := events.ExtractPayload[events.CommandRejectedPayload](history[1])
	if second.Input != "hello there" || second.Kind != "unknown_command" {
		t.Errorf("second: %+v", second)
	}
}

func TestInterpreterStrictEvents(t *testing.T) {
	in := NewInterpreter(NewParser(ParserOptions{StrictEventOrder: true}), NewExecutor(tasks.NewList(nil), nil))
	out := in.Handle("event trip /from 2026-01-24 /to 2026-01-22")
	if out.Kind != OutcomeError {
		t.Errorf("got %+v", out)
	}
	if in.Executor().List().Len() != 0 {
		t.Error("rejected event should not be added")
	}
}
