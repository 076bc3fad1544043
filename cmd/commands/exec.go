package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/sora/internal/command"
)

var errCommandFailed = errors.New("command failed")

// NewExecCommand returns the exec subcommand.
func NewExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Run a single command line and print the reply",
		ArgsUsage: "<command line...>",
		Action:    runExec,
	}
}

func runExec(_ context.Context, cmd *cli.Command) error {
	line := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(line) == "" {
		return fmt.Errorf("usage: sora exec <command line>")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, n := range a.notices() {
		fmt.Fprintln(errWriter(cmd), n)
	}

	outcome := a.interp.Handle(line)
	if outcome.Kind == command.OutcomeError {
		fmt.Fprintln(errWriter(cmd), outcome.Message)
		return errCommandFailed
	}
	fmt.Fprintln(outWriter(cmd), outcome.Message)
	return nil
}
