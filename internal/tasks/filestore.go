package tasks

import (
	"fmt"
	"path/filepath"

	"github.com/dohr-michael/sora/internal/storage/dirstore"
)

// FileStore persists tasks as one storage line per task in a text file.
type FileStore struct {
	ds   *dirstore.DirStore
	name string
}

// NewFileStore creates a FileStore writing to path. The file and its parent
// directory are created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		ds:   dirstore.NewDirStore(filepath.Dir(path), "task"),
		name: filepath.Base(path),
	}
}

// Load reads and decodes the task file. A missing file yields an empty list.
func (fs *FileStore) Load() ([]*Task, []CorruptLine, error) {
	fs.ds.RLock()
	defer fs.ds.RUnlock()

	lines, err := fs.ds.ReadLines(fs.name)
	if err != nil {
		return nil, nil, fmt.Errorf("load tasks: %w", err)
	}
	list, corrupt := LoadTasks(lines)
	return list, corrupt, nil
}

// Save atomically replaces the task file with a snapshot of list.
func (fs *FileStore) Save(list []*Task) error {
	fs.ds.Lock()
	defer fs.ds.Unlock()

	if err := fs.ds.WriteLinesAtomic(fs.name, SerializeTasks(list)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Location returns the path of the task file.
func (fs *FileStore) Location() string {
	return fs.ds.FilePath(fs.name)
}
