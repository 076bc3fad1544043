package dirstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DirStore provides file primitives for stores rooted at a single directory.
// Files are written whole via temp file + rename, or appended line by line.
type DirStore struct {
	mu         sync.RWMutex
	baseDir    string
	entityName string // for error messages: "task", "history"
}

// NewDirStore creates a DirStore rooted at baseDir. The directory is not
// created until the first write.
func NewDirStore(baseDir, entityName string) *DirStore {
	return &DirStore{baseDir: baseDir, entityName: entityName}
}

// Lock acquires an exclusive lock.
func (ds *DirStore) Lock() { ds.mu.Lock() }

// Unlock releases an exclusive lock.
func (ds *DirStore) Unlock() { ds.mu.Unlock() }

// RLock acquires a shared read lock.
func (ds *DirStore) RLock() { ds.mu.RLock() }

// RUnlock releases a shared read lock.
func (ds *DirStore) RUnlock() { ds.mu.RUnlock() }

// BaseDir returns the root directory.
func (ds *DirStore) BaseDir() string {
	return ds.baseDir
}

// FilePath returns the path to a named file within the root directory.
func (ds *DirStore) FilePath(name string) string {
	return filepath.Join(ds.baseDir, name)
}

// EnsureDir creates the root directory (and parents) if it doesn't exist.
func (ds *DirStore) EnsureDir() error {
	if err := os.MkdirAll(ds.baseDir, 0o755); err != nil {
		return fmt.Errorf("create %s dir: %w", ds.entityName, err)
	}
	return nil
}

// ListFiles returns the names of regular files in the root directory that
// carry the given extension, sorted by name. A missing directory yields nil.
func (ds *DirStore) ListFiles(ext string) ([]string, error) {
	entries, err := os.ReadDir(ds.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s dir: %w", ds.entityName, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// WriteLinesAtomic replaces a file with the given lines, each terminated by
// a newline. The root directory is created first if needed.
func (ds *DirStore) WriteLinesAtomic(name string, lines []string) error {
	if err := ds.EnsureDir(); err != nil {
		return err
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return ds.WriteFileAtomic(name, []byte(sb.String()))
}

// ReadLines returns the lines of a file without their terminators. Lines
// may be of any length. Returns nil, nil if the file doesn't exist.
func (ds *DirStore) ReadLines(name string) ([]string, error) {
	f, err := os.Open(ds.FilePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	err = eachLine(f, func(line string) {
		lines = append(lines, strings.TrimSuffix(line, "\r"))
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return lines, nil
}

// eachLine calls fn for every newline-terminated line of r, plus a final
// unterminated one if present.
func eachLine(r io.Reader, fn func(string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			fn(strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// AppendJSONL appends a JSON-encoded line to the named file.
func (ds *DirStore) AppendJSONL(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	if err := ds.EnsureDir(); err != nil {
		return err
	}

	f, err := os.OpenFile(ds.FilePath(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}

// LoadJSONL reads all JSON lines from a file, deserializing each into type T.
func LoadJSONL[T any](ds *DirStore, name string) ([]T, error) {
	f, err := os.Open(ds.FilePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	var items []T
	err = eachLine(f, func(line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		var item T
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return // skip corrupted lines
		}
		items = append(items, item)
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return items, nil
}

// WriteFileAtomic atomically writes content to a named file using tmp + rename.
func (ds *DirStore) WriteFileAtomic(name string, content []byte) error {
	path := ds.FilePath(name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write %s tmp: %w", name, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}

	return nil
}
