package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/sora/internal/command"
	"github.com/dohr-michael/sora/internal/config"
	"github.com/dohr-michael/sora/internal/events"
	"github.com/dohr-michael/sora/internal/storage"
	"github.com/dohr-michael/sora/internal/tasks"
)

// loadConfig reads the config named by --config, then applies --data and
// --debug on top of it and installs the slog handler.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if data := cmd.String("data"); data != "" {
		cfg.Storage.Path = data
	}
	if backend := config.NormalizeBackend(cmd.String("backend")); backend != "" {
		cfg.Storage.Backend = backend
		if cmd.String("data") == "" {
			cfg.Storage.Path = config.DataPath(backend)
		}
	}
	if cmd.Bool("debug") {
		cfg.Log.Level = "debug"
	}

	level := cfg.Log.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(errWriter(cmd), &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

// openStore opens the task store selected by the config.
func openStore(cfg *config.Config) (tasks.Store, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		s, err := tasks.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendFile:
		return tasks.NewFileStore(cfg.Storage.Path), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// app is everything one invocation needs to run commands.
type app struct {
	cfg     *config.Config
	store   tasks.Store
	bus     *events.Bus
	interp  *command.Interpreter
	corrupt []tasks.CorruptLine

	closeStore func() error
	history    *storage.HistoryLogger
}

// openApp loads config, opens the store, loads the tasks and wires the
// executor, bus and journal together.
func openApp(cmd *cli.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	loaded, corrupt, err := store.Load()
	if err != nil {
		closeStore()
		return nil, err
	}
	for _, c := range corrupt {
		slog.Warn("skipped corrupt task line", "location", store.Location(), "line", c.Line, "error", c.Err)
	}

	bus := events.NewBus(events.NewSessionID())
	a := &app{
		cfg:        cfg,
		store:      store,
		bus:        bus,
		corrupt:    corrupt,
		closeStore: closeStore,
	}
	if cfg.History.IsEnabled() {
		a.history = storage.NewHistoryLogger(cfg.History.Dir, bus, slog.Default())
	}

	exec := command.NewExecutor(tasks.NewList(loaded), store,
		command.WithBus(bus),
		command.WithThreshold(cfg.Search.Threshold),
		command.WithLogger(slog.Default()),
	)
	parser := command.NewParser(command.ParserOptions{StrictEventOrder: cfg.Tasks.StrictEventOrder})
	a.interp = command.NewInterpreter(parser, exec)

	slog.Debug("tasks loaded", "location", store.Location(), "count", len(loaded), "corrupt", len(corrupt))
	return a, nil
}

// notices describes skipped storage lines for the user.
func (a *app) notices() []string {
	out := make([]string, 0, len(a.corrupt))
	for _, c := range a.corrupt {
		out = append(out, fmt.Sprintf("Heads up! I skipped line %d of %s: %v", c.Line, a.store.Location(), c.Err))
	}
	return out
}

func (a *app) publishSession(started bool) {
	a.bus.Publish(events.NewTypedEvent(events.SessionPayload{
		Started: started,
		Tasks:   a.interp.Executor().List().Len(),
		Store:   a.store.Location(),
	}))
}

func (a *app) Close() {
	if a.history != nil {
		a.history.Close()
	}
	a.bus.Close()
	if err := a.closeStore(); err != nil {
		slog.Warn("failed to close task store", "error", err)
	}
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
