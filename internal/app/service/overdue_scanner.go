package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// OverdueScanner sweeps the task store for tasks past their due date and
// raises one overdue event per episode. The episode flag lives on the task
// record and is claimed through compare-and-swap, so a sweep that races a
// status change simply drops that task until the next cycle.
type OverdueScanner struct {
	tasks  ports.TaskStore
	events ports.EventSink
	clock  Clock
}

func NewOverdueScanner(tasks ports.TaskStore, events ports.EventSink, clock Clock) *OverdueScanner {
	if clock == nil {
		clock = RealClock{}
	}
	return &OverdueScanner{tasks: tasks, events: events, clock: clock}
}

// Sweep flags every newly-overdue task once. Repeated sweeps over an
// unchanged store emit nothing new.
func (s *OverdueScanner) Sweep(ctx context.Context) error {
	now := s.clock.Now()
	overdue, err := s.tasks.ListOverdueUnnotified(ctx, now)
	if err != nil {
		return err
	}

	for _, task := range overdue {
		flagged, err := s.tasks.CompareAndSwap(ctx, task.ID, task.Version, func(t *domain.Task) error {
			if !t.Overdue(now) || t.OverdueNotifiedAt != nil {
				return domain.ErrInvalidState
			}
			stamp := now
			t.OverdueNotifiedAt = &stamp
			return nil
		})
		if err != nil {
			// Lost the race to a concurrent update, or the task is no
			// longer overdue. Either way the trigger condition is stale.
			if errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrInvalidState) || errors.Is(err, domain.ErrTaskNotFound) {
				continue
			}
			return err
		}

		subject := uint64(0)
		if flagged.AssignedTo != nil {
			subject = *flagged.AssignedTo
		}
		s.events.Publish(ctx, domain.Event{
			TaskID:     flagged.ID,
			Kind:       domain.EventOverdue,
			OldStatus:  flagged.Status,
			NewStatus:  flagged.Status,
			SubjectID:  subject,
			OccurredAt: now,
		})
	}
	return nil
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *OverdueScanner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				zap.L().Error("overdue sweep failed", zap.Error(err))
			}
		}
	}
}
