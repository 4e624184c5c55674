package domain

import "time"

type EventKind string

const (
	EventAssigned      EventKind = "assigned"
	EventUnassigned    EventKind = "unassigned"
	EventStatusChanged EventKind = "status_changed"
	EventOverdue       EventKind = "overdue"
)

// Event is an in-process record of a task-affecting fact. It is never
// persisted; it only decouples the mutation path from notification derivation.
// SubjectID is the user the fact is about: the new assignee for assigned, the
// previous assignee for unassigned, the task's manager for status_changed and
// the current assignee for overdue.
type Event struct {
	TaskID     uint64
	Kind       EventKind
	OldStatus  TaskStatus
	NewStatus  TaskStatus
	ActorID    uint64
	SubjectID  uint64
	OccurredAt time.Time
}
