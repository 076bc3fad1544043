package tasks

// Store persists full task snapshots. Save replaces whatever was stored
// before; Load on an empty or missing store returns no tasks and no error.
type Store interface {
	Load() ([]*Task, []CorruptLine, error)
	Save(list []*Task) error
	// Location describes where the snapshot lives, for status output.
	Location() string
}
