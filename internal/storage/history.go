// Package storage keeps the per-session command history journal.
package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dohr-michael/sora/internal/events"
	"github.com/dohr-michael/sora/internal/storage/dirstore"
)

const historyExt = ".jsonl"

// HistoryLogger appends every bus event to <dir>/<session-id>.jsonl.
type HistoryLogger struct {
	store       *dirstore.DirStore
	logger      *slog.Logger
	unsubscribe func()
}

// NewHistoryLogger subscribes to all events on bus and journals them in dir.
func NewHistoryLogger(dir string, bus *events.Bus, logger *slog.Logger) *HistoryLogger {
	if logger == nil {
		logger = slog.Default()
	}
	hl := &HistoryLogger{
		store:  dirstore.NewDirStore(dir, "history"),
		logger: logger,
	}
	hl.unsubscribe = bus.Subscribe(hl.handleEvent)
	return hl
}

// Close unsubscribes the logger from the bus.
func (hl *HistoryLogger) Close() {
	if hl.unsubscribe != nil {
		hl.unsubscribe()
	}
}

func (hl *HistoryLogger) handleEvent(e events.Event) {
	hl.store.Lock()
	defer hl.store.Unlock()

	if err := hl.store.AppendJSONL(fileName(e.SessionID), e); err != nil {
		hl.logger.Warn("failed to journal event", "type", e.Type, "error", err)
	}
}

func fileName(sessionID string) string {
	if sessionID == "" {
		return "_global" + historyExt
	}
	return sessionID + historyExt
}

// SessionSummary describes one journaled session.
type SessionSummary struct {
	ID       string    `json:"id" yaml:"id"`
	Events   int       `json:"events" yaml:"events"`
	Started  time.Time `json:"started" yaml:"started"`
	LastSeen time.Time `json:"last_seen" yaml:"last_seen"`
}

// ListSessions returns a summary of every journal in dir, oldest first.
// A missing directory yields no sessions.
func ListSessions(dir string) ([]SessionSummary, error) {
	ds := dirstore.NewDirStore(dir, "history")
	names, err := ds.ListFiles(historyExt)
	if err != nil {
		return nil, err
	}

	var out []SessionSummary
	for _, name := range names {
		evts, err := dirstore.LoadJSONL[events.Event](ds, name)
		if err != nil {
			return nil, err
		}
		if len(evts) == 0 {
			continue
		}
		out = append(out, SessionSummary{
			ID:       strings.TrimSuffix(name, historyExt),
			Events:   len(evts),
			Started:  evts[0].Timestamp,
			LastSeen: evts[len(evts)-1].Timestamp,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Started.Before(out[j].Started)
	})
	return out, nil
}

// ReadHistory returns the last limit events of session, or all of them when
// limit <= 0. An empty session selects the most recently started one.
func ReadHistory(dir, session string, limit int) ([]events.Event, error) {
	if session == "" {
		sessions, err := ListSessions(dir)
		if err != nil {
			return nil, err
		}
		if len(sessions) == 0 {
			return nil, nil
		}
		session = sessions[len(sessions)-1].ID
	}

	if !validSessionID(session) {
		return nil, fmt.Errorf("invalid session id %q", session)
	}

	ds := dirstore.NewDirStore(dir, "history")
	evts, err := dirstore.LoadJSONL[events.Event](ds, fileName(session))
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", session, err)
	}
	if limit > 0 && len(evts) > limit {
		evts = evts[len(evts)-limit:]
	}
	return evts, nil
}

// validSessionID reports whether id names a journal inside the history dir.
func validSessionID(id string) bool {
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return false
	}
	return filepath.Base(id) == id
}
