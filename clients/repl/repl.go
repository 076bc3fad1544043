// Package repl runs the interactive line-oriented session: one command per
// line, one reply per command.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dohr-michael/sora/internal/command"
)

const (
	greeting = "Hey! I'm Sora\nWhat would you like to do today?"
	farewell = "Oh, leaving already? Hope you have a productive day!"
	prompt   = "> "
)

// Options configures a session.
type Options struct {
	// Interactive shows a prompt before each line.
	Interactive bool
	// Notices are shown after the greeting, e.g. skipped storage lines.
	Notices []string
	Logger  *slog.Logger
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run greets the user, then reads lines from in until an exit command, end
// of input or ctx is cancelled. Every reply is written to out. Command
// failures are shown and the session continues; only I/O errors end it.
func Run(ctx context.Context, in io.Reader, out io.Writer, interp *command.Interpreter, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	st := newStyles(lipgloss.NewRenderer(out))

	if err := show(out, st.info, greeting); err != nil {
		return err
	}
	for _, notice := range opts.Notices {
		if err := show(out, st.muted, notice); err != nil {
			return err
		}
	}

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if opts.Interactive {
			if _, err := fmt.Fprint(out, st.prompt.Render(prompt)); err != nil {
				return fmt.Errorf("write prompt: %w", err)
			}
		}

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return show(out, st.info, farewell)
			}
			line = l
		}
		if strings.TrimSpace(line) == "" && opts.Interactive {
			continue
		}

		outcome := interp.Handle(line)
		logger.Debug("command handled", "input", line, "outcome", outcome.Kind)

		style := st.info
		if outcome.Kind == command.OutcomeError {
			style = st.err
		}
		if err := show(out, style, outcome.Message); err != nil {
			return err
		}
		if outcome.Kind == command.OutcomeExit {
			return nil
		}
	}
}

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. lines is closed at end of input, after which readErr
// yields the scan error or nil. Scanning stops once done is closed, but a
// read already blocked in in stays blocked until in returns.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr
}

func show(out io.Writer, style lipgloss.Style, msg string) error {
	if _, err := fmt.Fprintln(out, style.Render(msg)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, err := fmt.Fprintln(out)
	return err
}
