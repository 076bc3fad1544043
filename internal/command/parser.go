package command

import (
	"strconv"
	"strings"

	"github.com/dohr-michael/sora/internal/tasks"
	"github.com/dohr-michael/sora/internal/temporal"
)

const (
	keywordBye      = "bye"
	keywordList     = "list"
	keywordMark     = "mark"
	keywordUnmark   = "unmark"
	keywordDelete   = "delete"
	keywordOn       = "on"
	keywordFind     = "find"
	keywordTodo     = "todo"
	keywordDeadline = "deadline"
	keywordEvent    = "event"
)

const (
	separatorBy   = " /by "
	separatorFrom = " /from "
	separatorTo   = " /to "
)

// ParserOptions tunes parsing.
type ParserOptions struct {
	// StrictEventOrder rejects events whose end is before their start.
	// Off by default: events are accepted in any order.
	StrictEventOrder bool
}

// Parser turns a command line into a Command.
type Parser struct {
	opts ParserOptions
}

// NewParser creates a Parser.
func NewParser(opts ParserOptions) *Parser {
	return &Parser{opts: opts}
}

var defaultParser = NewParser(ParserOptions{})

// Parse parses line with default options.
func Parse(line string) (Command, error) {
	return defaultParser.Parse(line)
}

// Parse resolves the first whitespace-delimited token of line, compared
// case-insensitively and as a whole word, and validates the arguments for
// that keyword. Failures are returned as *Error.
func (p *Parser) Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, invalidFormat("Command string should not be empty")
	}

	first := strings.Fields(trimmed)[0]
	rest := trimmed[len(first):]

	switch keyword := strings.ToLower(first); keyword {
	case keywordBye:
		return Exit{}, nil
	case keywordList:
		return ListAll{}, nil
	case keywordMark, keywordUnmark, keywordDelete:
		return parseIndexCommand(trimmed, keyword)
	case keywordOn:
		return parseOnDate(rest)
	case keywordFind:
		return parseFind(rest)
	case keywordTodo:
		return parseTodo(rest)
	case keywordDeadline:
		return parseDeadline(rest)
	case keywordEvent:
		return p.parseEvent(rest)
	default:
		return nil, unknownCommand()
	}
}

func parseIndexCommand(line, keyword string) (Command, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 2 {
		return nil, invalidFormat("Hmm... I need a task number to proceed\n Try something like: %s <n>", keyword)
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return nil, invalidFormat("Whoops! That number is not valid.\n Check your task list and use: %s <n>", keyword)
	}
	index := n - 1

	switch keyword {
	case keywordMark:
		return MarkDone{Index: index}, nil
	case keywordUnmark:
		return MarkUndone{Index: index}, nil
	default:
		return Delete{Index: index}, nil
	}
}

func parseDate(token string) (temporal.Value, error) {
	v, err := temporal.Parse(token)
	if err != nil {
		return temporal.Value{}, invalidFormat("%s", err.Error())
	}
	return v, nil
}

func parseOnDate(rest string) (Command, error) {
	target := strings.TrimSpace(rest)
	if target == "" {
		return nil, invalidFormat("Oops! Invalid date format.\n Use `on %s` or `on %s`", temporal.DatePattern, temporal.DateTimePattern)
	}
	v, err := parseDate(target)
	if err != nil {
		return nil, err
	}
	return OnDate{Target: v}, nil
}

func parseFind(rest string) (Command, error) {
	kw := strings.ToLower(strings.TrimSpace(rest))
	if kw == "" {
		return nil, invalidFormat("Oops! Keyword cannot be empty.\n Use find <keyword>")
	}
	return Find{Keyword: kw}, nil
}

func parseTodo(rest string) (Command, error) {
	name := strings.TrimSpace(rest)
	if name == "" {
		return nil, invalidFormat("Oops! The task name is missing\n Use todo <name>")
	}
	t, err := tasks.NewTodo(name)
	if err != nil {
		return nil, invalidFormat("%s", err.Error())
	}
	return AddTask{Task: t}, nil
}

// splitTwo splits s on sep into two trimmed, non-empty halves.
func splitTwo(s, sep string) (string, string, bool) {
	before, after, found := strings.Cut(s, sep)
	if !found {
		return "", "", false
	}
	before, after = strings.TrimSpace(before), strings.TrimSpace(after)
	if before == "" || after == "" {
		return "", "", false
	}
	return before, after, true
}

func parseDeadline(rest string) (Command, error) {
	name, by, ok := splitTwo(rest, separatorBy)
	if !ok {
		return nil, invalidFormat("Oops! Deadline requires /by and name\n Use deadline <name> /by <date>")
	}
	due, err := parseDate(by)
	if err != nil {
		return nil, err
	}
	t, err := tasks.NewDeadline(name, due)
	if err != nil {
		return nil, invalidFormat("%s", err.Error())
	}
	return AddTask{Task: t}, nil
}

func (p *Parser) parseEvent(rest string) (Command, error) {
	const usage = "Oops! Event requires /from, /to and name\n Use event <name> /from <date> /to <date>"

	name, span, ok := splitTwo(rest, separatorFrom)
	if !ok {
		return nil, invalidFormat(usage)
	}
	from, to, ok := splitTwo(span, separatorTo)
	if !ok {
		return nil, invalidFormat(usage)
	}

	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}

	t, err := tasks.NewEvent(name, start, end)
	if err != nil {
		return nil, invalidFormat("%s", err.Error())
	}
	if p.opts.StrictEventOrder && !t.InOrder() {
		return nil, invalidFormat("Hmm... this event ends before it starts\n Check the /from and /to dates")
	}
	return AddTask{Task: t}, nil
}
