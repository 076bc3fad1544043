package tasks

// List is the ordered in-memory task collection. Positions are zero-based
// and only stable until the next Remove: removing index i shifts every
// later task down by one. Callers that cache indices must refresh them
// after a delete.
type List struct {
	items []*Task
}

// NewList creates a list holding the given tasks in order.
func NewList(initial []*Task) *List {
	items := make([]*Task, 0, len(initial))
	items = append(items, initial...)
	return &List{items: items}
}

// Len returns the number of tasks.
func (l *List) Len() int { return len(l.items) }

// Valid reports whether index addresses an existing task.
func (l *List) Valid(index int) bool {
	return index >= 0 && index < len(l.items)
}

// Get returns the task at index, or nil when out of range.
func (l *List) Get(index int) *Task {
	if !l.Valid(index) {
		return nil
	}
	return l.items[index]
}

// Add appends a task and returns its index.
func (l *List) Add(t *Task) int {
	l.items = append(l.items, t)
	return len(l.items) - 1
}

// Remove deletes and returns the task at index, or nil when out of range.
func (l *List) Remove(index int) *Task {
	if !l.Valid(index) {
		return nil
	}
	t := l.items[index]
	copy(l.items[index:], l.items[index+1:])
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
	return t
}

// All returns a snapshot of the tasks in order. The slice is a copy; the
// tasks themselves are shared.
func (l *List) All() []*Task {
	out := make([]*Task, len(l.items))
	copy(out, l.items)
	return out
}

// Counts returns how many tasks are done and pending.
func (l *List) Counts() (done, pending int) {
	for _, t := range l.items {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}
