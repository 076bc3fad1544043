package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/sora/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "sora",
		Usage: "Your personal task tracker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "Path to the task data file (overrides storage.path)",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend: file or sqlite (overrides storage.backend)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewChatCommand(),
			NewExecCommand(),
			NewExportCommand(),
			NewHistoryCommand(),
			NewStatusCommand(),
		},
		DefaultCommand: "chat",
	}
}
