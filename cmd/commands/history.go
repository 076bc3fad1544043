package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/sora/internal/events"
	"github.com/dohr-michael/sora/internal/storage"
)

// NewHistoryCommand returns the history subcommand.
func NewHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show the journal of past commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "session",
				Aliases: []string{"s"},
				Usage:   "Session ID (empty = most recent)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Show only the last n events (0 = all)",
				Value:   20,
			},
			&cli.BoolFlag{
				Name:  "sessions",
				Usage: "List journaled sessions instead of events",
			},
		},
		Action: runHistory,
	}
}

func runHistory(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := outWriter(cmd)

	if cmd.Bool("sessions") {
		list, err := storage.ListSessions(cfg.History.Dir)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEVENTS\tSTARTED\tLAST SEEN")
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.ID, s.Events,
				s.Started.Format("2006-01-02 15:04"), s.LastSeen.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	}

	evts, err := storage.ReadHistory(cfg.History.Dir, cmd.String("session"), int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(evts) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}
	for _, e := range evts {
		fmt.Fprintf(out, "[%s] %s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, describeEvent(e))
	}
	return nil
}

// describeEvent renders the interesting payload fields on one line.
func describeEvent(e events.Event) string {
	switch e.Type {
	case events.EventCommandRejected:
		if p, ok := events.ExtractPayload[events.CommandRejectedPayload](e); ok {
			return fmt.Sprintf("%q (%s)", p.Input, p.Kind)
		}
	case events.EventTaskAdded, events.EventTaskDone, events.EventTaskUndone, events.EventTaskDeleted:
		if p, ok := events.ExtractPayload[events.TaskAddedPayload](e); ok {
			return fmt.Sprintf("#%d %s", p.Index+1, p.StorageLine)
		}
	case events.EventSessionStarted, events.EventSessionEnded:
		if p, ok := events.ExtractPayload[events.SessionPayload](e); ok {
			return fmt.Sprintf("%d tasks in %s", p.Tasks, p.Store)
		}
	}

	keys := make([]string, 0, len(e.Payload))
	for k := range e.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Payload[k]))
	}
	return strings.Join(parts, " ")
}
