package events

import (
	"encoding/json"
)

// EventPayload is the interface all typed payloads implement.
type EventPayload interface {
	EventType() EventType
}

// TaskPayload describes the task affected by a mutation. Index is the
// zero-based position the task had when the event fired; Count is the list
// length afterwards.
type TaskPayload struct {
	Kind        string `json:"kind"`
	Index       int    `json:"index"`
	Count       int    `json:"count"`
	Description string `json:"description"`
	StorageLine string `json:"storage_line"`
}

// TaskAddedPayload is published after a task is appended.
type TaskAddedPayload struct{ TaskPayload }

func (TaskAddedPayload) EventType() EventType { return EventTaskAdded }

// TaskDonePayload is published after a task is marked done.
type TaskDonePayload struct{ TaskPayload }

func (TaskDonePayload) EventType() EventType { return EventTaskDone }

// TaskUndonePayload is published after a task is marked not done.
type TaskUndonePayload struct{ TaskPayload }

func (TaskUndonePayload) EventType() EventType { return EventTaskUndone }

// TaskDeletedPayload is published after a task is removed.
type TaskDeletedPayload struct{ TaskPayload }

func (TaskDeletedPayload) EventType() EventType { return EventTaskDeleted }

// CommandRejectedPayload records input that failed to parse or execute.
type CommandRejectedPayload struct {
	Input string `json:"input"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func (CommandRejectedPayload) EventType() EventType { return EventCommandRejected }

// SessionPayload marks the start or end of an interactive session.
type SessionPayload struct {
	Started bool   `json:"started"`
	Tasks   int    `json:"tasks"`
	Store   string `json:"store,omitempty"`
}

func (p SessionPayload) EventType() EventType {
	if p.Started {
		return EventSessionStarted
	}
	return EventSessionEnded
}

// NewTypedEvent builds an event from a typed payload. ID, session and
// timestamp are filled in by Bus.Publish.
func NewTypedEvent(payload EventPayload) Event {
	return Event{
		Type:    payload.EventType(),
		Payload: toMap(payload),
	}
}

func toMap(v any) map[string]any {
	var result map[string]any
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return result
}

// ExtractPayload decodes an event payload back into a typed value.
func ExtractPayload[T EventPayload](e Event) (T, bool) {
	var result T
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}
