package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/sora/internal/storage"
	"github.com/dohr-michael/sora/internal/tasks"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show where tasks are stored and how many are done",
		Action: runStatus,
	}
}

func runStatus(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	loaded, corrupt, err := store.Load()
	if err != nil {
		return fmt.Errorf("check tasks: %w", err)
	}
	done, pending := tasks.NewList(loaded).Counts()

	history := "disabled"
	if cfg.History.IsEnabled() {
		sessions, err := storage.ListSessions(cfg.History.Dir)
		if err != nil {
			return fmt.Errorf("check history: %w", err)
		}
		history = fmt.Sprintf("%s (%d sessions)", cfg.History.Dir, len(sessions))
	}

	w := tabwriter.NewWriter(outWriter(cmd), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Backend:\t%s\n", cfg.Storage.Backend)
	fmt.Fprintf(w, "Data:\t%s\n", store.Location())
	fmt.Fprintf(w, "Tasks:\t%d (%d done, %d pending)\n", len(loaded), done, pending)
	if len(corrupt) > 0 {
		fmt.Fprintf(w, "Corrupt lines:\t%d\n", len(corrupt))
	}
	fmt.Fprintf(w, "History:\t%s\n", history)
	return w.Flush()
}
