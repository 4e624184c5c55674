package domain

import "time"

type NotificationKind string

const (
	NotificationAssigned      NotificationKind = "assigned"
	NotificationUnassigned    NotificationKind = "unassigned"
	NotificationStatusChanged NotificationKind = "status_changed"
	NotificationOverdue       NotificationKind = "overdue"
)

// Notification is an append-only record addressed to a single user. The core
// only ever creates notifications; IsRead is flipped by the recipient's client
// and rows are never deleted here.
type Notification struct {
	ID        string
	UserID    uint64
	TaskID    uint64
	Kind      NotificationKind
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
