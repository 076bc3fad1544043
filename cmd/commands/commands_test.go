package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// run executes the root command with the given stdin and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.Reader = strings.NewReader(stdin)
	root.Writer = &out
	root.ErrWriter = &errOut
	err := root.Run(context.Background(), append([]string{"sora"}, args...))
	return out.String(), err
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("SORA_PATH", home)
	return home
}

func TestExecPersistsAcrossRuns(t *testing.T) {
	home := setupHome(t)

	if _, err := run(t, "", "exec", "todo", "read", "book"); err != nil {
		t.Fatalf("exec todo: %v", err)
	}
	if _, err := run(t, "", "exec", "deadline", "submit", "/by", "2026-01-22", "23:59"); err != nil {
		t.Fatalf("exec deadline: %v", err)
	}
	if _, err := run(t, "", "exec", "mark", "1"); err != nil {
		t.Fatalf("exec mark: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, "data", "sora.txt"))
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	want := "T | 1 | read book\nD | 0 | submit | 2026-01-22 23:59\n"
	if string(data) != want {
		t.Errorf("data file:\ngot  %q\nwant %q", data, want)
	}

	out, err := run(t, "", "exec", "list")
	if err != nil {
		t.Fatalf("exec list: %v", err)
	}
	if !strings.Contains(out, "2. [D][ ] submit (by: Jan 22 2026 23:59)") {
		t.Errorf("list output: %q", out)
	}
}

func TestExecRejectedCommand(t *testing.T) {
	setupHome(t)
	if _, err := run(t, "", "exec", "listing"); err == nil {
		t.Error("expected error for unknown command")
	}
	if _, err := run(t, "", "exec"); err == nil {
		t.Error("expected usage error without a command line")
	}
}

func TestChatIsDefault(t *testing.T) {
	setupHome(t)
	out, err := run(t, "todo read book\nlist\nbye\n")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	for _, want := range []string{"Hey! I'm Sora", "1. [T][ ] read book", "leaving already"} {
		if !strings.Contains(out, want) {
			t.Errorf("chat output missing %q:\n%s", want, out)
		}
	}
}

func TestChatReportsCorruptLines(t *testing.T) {
	home := setupHome(t)
	data := filepath.Join(home, "data", "sora.txt")
	if err := os.MkdirAll(filepath.Dir(data), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(data, []byte("T | 0 | ok\nX | 0 | broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "list\n")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(out, "skipped line 2") {
		t.Errorf("expected corrupt-line notice:\n%s", out)
	}
	if !strings.Contains(out, "1. [T][ ] ok") {
		t.Errorf("valid task should still load:\n%s", out)
	}
}

func TestExportJSON(t *testing.T) {
	setupHome(t)
	if _, err := run(t, "", "exec", "event", "camp", "/from", "2026-01-22", "/to", "2026-01-24", "18:00"); err != nil {
		t.Fatalf("exec event: %v", err)
	}

	out, err := run(t, "", "export", "--format", "json")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var got []exportedTask
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode export: %v\n%s", err, out)
	}
	want := []exportedTask{{Number: 1, Kind: "event", Description: "camp", Start: "2026-01-22", End: "2026-01-24 18:00"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("export (-want +got):\n%s", diff)
	}
}

func TestExportYAML(t *testing.T) {
	setupHome(t)
	if _, err := run(t, "", "exec", "todo", "read", "book"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, want := range []string{"- number: 1", "kind: todo", "description: read book", "done: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
	if _, err := run(t, "", "export", "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSQLiteBackend(t *testing.T) {
	home := setupHome(t)
	if _, err := run(t, "", "--backend", "sqlite", "exec", "todo", "water plants"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "data", "sora.db")); err != nil {
		t.Fatalf("sqlite db not created: %v", err)
	}
	out, err := run(t, "", "--backend", "sqlite", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "sqlite") || !strings.Contains(out, "1 (0 done, 1 pending)") {
		t.Errorf("status output:\n%s", out)
	}
}

func TestBackendFlagIgnoresCase(t *testing.T) {
	home := setupHome(t)
	if _, err := run(t, "", "--backend", "SQLite", "exec", "todo", "water plants"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "data", "sora.db")); err != nil {
		t.Fatalf("sqlite db not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "data", "sora.txt")); !os.IsNotExist(err) {
		t.Errorf("file backend should not be used, stat err: %v", err)
	}
}

func TestHistory(t *testing.T) {
	setupHome(t)
	if _, err := run(t, "", "exec", "todo", "read", "book"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "task.added") || !strings.Contains(out, "T | 0 | read book") {
		t.Errorf("history output:\n%s", out)
	}

	out, err = run(t, "", "history", "--sessions")
	if err != nil {
		t.Fatalf("history --sessions: %v", err)
	}
	if !strings.Contains(out, "sess_") {
		t.Errorf("sessions output:\n%s", out)
	}
}

func TestHistoryDisabled(t *testing.T) {
	home := setupHome(t)
	cfgPath := filepath.Join(home, "config.jsonc")
	if err := os.WriteFile(cfgPath, []byte(`{"history": {"enabled": false}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "exec", "todo", "read", "book"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No history yet.") {
		t.Errorf("expected empty history:\n%s", out)
	}
}

func TestHistoryRejectsPathSession(t *testing.T) {
	home := setupHome(t)
	if _, err := run(t, "", "exec", "todo", "read", "book"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, "secret.jsonl"), []byte(`{"type":"task.added"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "history", "--session", "../secret")
	if err == nil {
		t.Fatalf("expected error, got output:\n%s", out)
	}
}
