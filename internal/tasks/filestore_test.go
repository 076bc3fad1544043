package tasks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTasks(t *testing.T) []*Task {
	t.Helper()
	done := mustTodo(t, "read book")
	done.MarkDone()
	return []*Task{
		done,
		mustDeadline(t, "submit", "2026-01-22 23:59"),
		mustEvent(t, "camp", "2026-01-22", "2026-01-24 18:00"),
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "data", "sora.txt"))

	list, corrupt, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 0 || len(corrupt) != 0 {
		t.Errorf("expected empty load, got %d tasks, %d corrupt", len(list), len(corrupt))
	}
}

func TestFileStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sora.txt")
	store := NewFileStore(path)

	want := sampleTasks(t)
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	wantFile := "T | 1 | read book\n" +
		"D | 0 | submit | 2026-01-22 23:59\n" +
		"E | 0 | camp | 2026-01-22 | 2026-01-24 18:00\n"
	if string(data) != wantFile {
		t.Errorf("file content:\n%s\nwant:\n%s", data, wantFile)
	}

	got, corrupt, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(corrupt) != 0 {
		t.Fatalf("unexpected corrupt lines: %v", corrupt)
	}
	if diff := cmp.Diff(SerializeTasks(want), SerializeTasks(got)); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "sora.txt"))

	if err := store.Save(sampleTasks(t)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save([]*Task{mustTodo(t, "only")}); err != nil {
		t.Fatal(err)
	}

	got, _, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Description != "only" {
		t.Errorf("expected single task after replace, got %v", got)
	}
}

func TestFileStoreSkipsCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sora.txt")
	content := "T | 0 | valid\nD | 0 | missing date\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, corrupt, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("loaded %d tasks, want 1", len(got))
	}
	if len(corrupt) != 1 || corrupt[0].Line != 2 {
		t.Errorf("corrupt: got %v, want line 2", corrupt)
	}
}

func TestFileStoreLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sora.txt")
	if got := NewFileStore(path).Location(); got != path {
		t.Errorf("Location: got %q, want %q", got, path)
	}
}

func TestFileStoreLongLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sora.txt")
	store := NewFileStore(path)

	long := mustTodo(t, strings.Repeat("a", 70_000))
	if err := store.Save([]*Task{mustTodo(t, "short one"), long, mustTodo(t, "short two")}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	list, corrupt, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(corrupt) != 0 {
		t.Errorf("unexpected corrupt lines: %v", corrupt)
	}
	if len(list) != 3 || list[1].Description != long.Description || list[2].Description != "short two" {
		t.Fatalf("expected all three tasks back, got %d", len(list))
	}
}

func TestFileStoreLongCorruptLineIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sora.txt")
	content := "T | 0 | first\n" + strings.Repeat("?", 70_000) + "\nT | 1 | last\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	list, corrupt, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 2 || list[0].Description != "first" || list[1].Description != "last" {
		t.Errorf("valid lines around the bad one should load, got %d", len(list))
	}
	if len(corrupt) != 1 || corrupt[0].Line != 2 {
		t.Errorf("expected line 2 reported corrupt, got %v", corrupt)
	}
}
