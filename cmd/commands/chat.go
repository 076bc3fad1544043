package commands

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/sora/clients/repl"
)

// NewChatCommand returns the chat subcommand.
func NewChatCommand() *cli.Command {
	return &cli.Command{
		Name:   "chat",
		Usage:  "Start an interactive session",
		Action: runChat,
	}
}

func runChat(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var in io.Reader = os.Stdin
	if r := cmd.Root().Reader; r != nil {
		in = r
	}
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = repl.IsTerminal(f)
	}

	a.publishSession(true)
	defer a.publishSession(false)

	return repl.Run(ctx, in, outWriter(cmd), a.interp, repl.Options{
		Interactive: interactive,
		Notices:     a.notices(),
	})
}
