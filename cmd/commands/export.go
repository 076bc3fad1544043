package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/dohr-michael/sora/internal/tasks"
)

// exportedTask is the structured form of a task for export.
type exportedTask struct {
	Number      int    `json:"number" yaml:"number"`
	Kind        string `json:"kind" yaml:"kind"`
	Done        bool   `json:"done" yaml:"done"`
	Description string `json:"description" yaml:"description"`
	Due         string `json:"due,omitempty" yaml:"due,omitempty"`
	Start       string `json:"start,omitempty" yaml:"start,omitempty"`
	End         string `json:"end,omitempty" yaml:"end,omitempty"`
}

func toExported(list []*tasks.Task) []exportedTask {
	out := make([]exportedTask, 0, len(list))
	for i, t := range list {
		e := exportedTask{
			Number:      i + 1,
			Kind:        t.Kind.String(),
			Done:        t.Done,
			Description: t.Description,
		}
		switch t.Kind {
		case tasks.KindDeadline:
			e.Due = t.Due.StorageToken()
		case tasks.KindEvent:
			e.Start = t.Start.StorageToken()
			e.End = t.End.StorageToken()
		}
		out = append(out, e)
	}
	return out
}

// NewExportCommand returns the export subcommand.
func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Print all tasks as YAML or JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: yaml or json",
				Value:   "yaml",
			},
		},
		Action: runExport,
	}
}

func runExport(_ context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unknown export format %q (want yaml or json)", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	loaded, _, err := store.Load()
	if err != nil {
		return err
	}
	return writeExport(outWriter(cmd), format, toExported(loaded))
}

func writeExport(w io.Writer, format string, list []exportedTask) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
