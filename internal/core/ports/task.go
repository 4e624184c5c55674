package ports

import (
	"context"
	"time"

	"taskboard/internal/core/domain"
)

// TaskStore is the sole write path for tasks. Every mutation after creation
// goes through CompareAndSwap: the mutator runs against a snapshot and the
// write commits only if the stored version still equals expectedVersion,
// otherwise domain.ErrVersionConflict is returned and nothing changes.
type TaskStore interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Get(ctx context.Context, id uint64) (domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, error)
	CompareAndSwap(ctx context.Context, id uint64, expectedVersion int64, mutate func(*domain.Task) error) (domain.Task, error)

	// ListOverdueUnnotified returns open tasks past their due date whose
	// current overdue episode has not been notified yet.
	ListOverdueUnnotified(ctx context.Context, now time.Time) ([]domain.Task, error)

	StatusCounts(ctx context.Context, userID uint64) (map[domain.TaskStatus]int, error)
	CountCompletedBetween(ctx context.Context, userID uint64, from, to time.Time) (int, error)
}

// UserDirectory is the read-only lookup owned by the authentication
// collaborator.
type UserDirectory interface {
	Lookup(ctx context.Context, id uint64) (domain.User, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, n domain.Notification) error
	ListByUser(ctx context.Context, userID uint64, unreadOnly bool) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (int, error)
	MarkRead(ctx context.Context, id string, userID uint64) error
}

// EventSink receives domain events synchronously on the mutation path.
// Implementations must not fail the mutation: delivery problems are theirs to
// log and swallow.
type EventSink interface {
	Publish(ctx context.Context, event domain.Event)
}

type TaskService interface {
	CreateTask(ctx context.Context, actor domain.Actor, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, error)
	Reassign(ctx context.Context, actor domain.Actor, taskID, newAssignee uint64) (domain.Task, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, taskID uint64, expectedVersion int64, target domain.TaskStatus, progress *int) (domain.Task, error)
	UpdateDetails(ctx context.Context, actor domain.Actor, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
}

type NotificationService interface {
	List(ctx context.Context, userID uint64, unreadOnly bool) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID uint64) (int, error)
	MarkRead(ctx context.Context, actor domain.Actor, id string) error
}

type StatsService interface {
	Snapshot(ctx context.Context, userID uint64) (domain.StatsSnapshot, error)
}
