package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// Notifier derives user-facing notifications from domain events. It is a pure
// reaction: it never mutates tasks and a failed insert never fails the
// mutation that produced the event.
type Notifier struct {
	notifications ports.NotificationStore
	clock         Clock
}

var _ ports.EventSink = (*Notifier)(nil)

func NewNotifier(notifications ports.NotificationStore, clock Clock) *Notifier {
	if clock == nil {
		clock = RealClock{}
	}
	return &Notifier{notifications: notifications, clock: clock}
}

func (n *Notifier) Publish(ctx context.Context, event domain.Event) {
	kind, message, ok := deriveNotification(event)
	if !ok {
		return
	}

	err := n.notifications.Insert(ctx, domain.Notification{
		ID:        uuid.NewString(),
		UserID:    event.SubjectID,
		TaskID:    event.TaskID,
		Kind:      kind,
		Message:   message,
		CreatedAt: n.clock.Now(),
	})
	if err != nil {
		zap.L().Error("failed to write notification",
			zap.Uint64("task_id", event.TaskID),
			zap.Uint64("user_id", event.SubjectID),
			zap.String("event_kind", string(event.Kind)),
			zap.Error(err),
		)
	}
}

func deriveNotification(event domain.Event) (domain.NotificationKind, string, bool) {
	if event.SubjectID == 0 {
		return "", "", false
	}

	switch event.Kind {
	case domain.EventAssigned:
		return domain.NotificationAssigned, "A task has been assigned to you", true
	case domain.EventUnassigned:
		return domain.NotificationUnassigned, "A task has been reassigned away from you", true
	case domain.EventStatusChanged:
		// Only the closing transitions are worth the manager's attention.
		switch event.NewStatus {
		case domain.TaskStatusCompleted:
			return domain.NotificationStatusChanged, "A task you assigned has been completed", true
		case domain.TaskStatusCancelled:
			return domain.NotificationStatusChanged, "A task you assigned has been cancelled", true
		}
		return "", "", false
	case domain.EventOverdue:
		return domain.NotificationOverdue, "A task assigned to you is overdue", true
	}
	return "", "", false
}
