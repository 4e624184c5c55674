package service

import (
	"context"
	"strings"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// TaskService orchestrates task creation, reassignment and status changes.
// It validates input and authorization, routes every mutation through the
// store's compare-and-swap and publishes domain events on success. It never
// retries a lost CAS on the caller's behalf: a version conflict is surfaced
// so the caller refetches and re-evaluates against fresh state.
type TaskService struct {
	tasks  ports.TaskStore
	users  ports.UserDirectory
	events ports.EventSink
	clock  Clock
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(tasks ports.TaskStore, users ports.UserDirectory, events ports.EventSink, clock Clock) *TaskService {
	if clock == nil {
		clock = RealClock{}
	}
	return &TaskService{tasks: tasks, users: users, events: events, clock: clock}
}

func (s *TaskService) CreateTask(ctx context.Context, actor domain.Actor, input domain.CreateTaskInput) (domain.Task, error) {
	if !actor.Role.CanManage() {
		return domain.Task{}, domain.ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return domain.Task{}, domain.ErrInvalidInput
	}
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}
	if !input.Priority.Valid() || input.EstimatedHours < 0 {
		return domain.Task{}, domain.ErrInvalidInput
	}

	if input.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *input.AssignedTo); err != nil {
			return domain.Task{}, err
		}
	}

	task, err := s.tasks.Create(ctx, domain.Task{
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Location:       input.Location,
		Equipment:      input.Equipment,
		Priority:       input.Priority,
		Status:         domain.TaskStatusPending,
		AssignedTo:     input.AssignedTo,
		AssignedBy:     actor.ID,
		EstimatedHours: input.EstimatedHours,
		Progress:       0,
		DueDate:        input.DueDate,
	})
	if err != nil {
		return domain.Task{}, err
	}

	if task.AssignedTo != nil {
		s.events.Publish(ctx, domain.Event{
			TaskID:     task.ID,
			Kind:       domain.EventAssigned,
			OldStatus:  task.Status,
			NewStatus:  task.Status,
			ActorID:    actor.ID,
			SubjectID:  *task.AssignedTo,
			OccurredAt: s.clock.Now(),
		})
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	return s.tasks.Get(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, error) {
	return s.tasks.List(ctx, filter, page)
}

func (s *TaskService) Reassign(ctx context.Context, actor domain.Actor, taskID, newAssignee uint64) (domain.Task, error) {
	if !domain.CanReassign(actor) {
		return domain.Task{}, domain.ErrForbidden
	}
	if err := s.checkAssignee(ctx, newAssignee); err != nil {
		return domain.Task{}, err
	}

	current, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if current.Status.Terminal() {
		return domain.Task{}, domain.ErrInvalidState
	}
	previous := current.AssignedTo

	// Single CAS attempt against the version just read. A racing writer
	// surfaces as a conflict; the caller decides whether to retry.
	updated, err := s.tasks.CompareAndSwap(ctx, taskID, current.Version, func(t *domain.Task) error {
		if t.Status.Terminal() {
			return domain.ErrInvalidState
		}
		assignee := newAssignee
		t.AssignedTo = &assignee
		t.AssignedBy = actor.ID
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	now := s.clock.Now()
	if previous != nil && *previous != newAssignee {
		s.events.Publish(ctx, domain.Event{
			TaskID:     updated.ID,
			Kind:       domain.EventUnassigned,
			OldStatus:  updated.Status,
			NewStatus:  updated.Status,
			ActorID:    actor.ID,
			SubjectID:  *previous,
			OccurredAt: now,
		})
	}
	if previous == nil || *previous != newAssignee {
		s.events.Publish(ctx, domain.Event{
			TaskID:     updated.ID,
			Kind:       domain.EventAssigned,
			OldStatus:  updated.Status,
			NewStatus:  updated.Status,
			ActorID:    actor.ID,
			SubjectID:  newAssignee,
			OccurredAt: now,
		})
	}
	return updated, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, actor domain.Actor, taskID uint64, expectedVersion int64, target domain.TaskStatus, progress *int) (domain.Task, error) {
	if !target.Valid() {
		return domain.Task{}, domain.ErrInvalidInput
	}

	current, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	effects, err := domain.DecideTransition(current, actor, target)
	if err != nil {
		return domain.Task{}, err
	}

	oldStatus := current.Status
	now := s.clock.Now()

	updated, err := s.tasks.CompareAndSwap(ctx, taskID, expectedVersion, func(t *domain.Task) error {
		// Re-decide against the snapshot: between Get and CAS the task
		// cannot have changed (the version check guards that), but the
		// snapshot is the authoritative input for the side effects.
		if _, err := domain.DecideTransition(*t, actor, target); err != nil {
			return err
		}
		t.Status = target
		if progress != nil && target == domain.TaskStatusInProgress {
			t.Progress = clampProgress(*progress)
		}
		if effects.ForceProgress != nil {
			t.Progress = *effects.ForceProgress
		}
		if effects.StampCompleted && t.CompletedDate == nil {
			stamp := now
			t.CompletedDate = &stamp
		}
		if target.Terminal() {
			// A closed task ends any overdue episode.
			t.OverdueNotifiedAt = nil
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.events.Publish(ctx, domain.Event{
		TaskID:     updated.ID,
		Kind:       domain.EventStatusChanged,
		OldStatus:  oldStatus,
		NewStatus:  updated.Status,
		ActorID:    actor.ID,
		SubjectID:  updated.AssignedBy,
		OccurredAt: now,
	})
	return updated, nil
}

func (s *TaskService) UpdateDetails(ctx context.Context, actor domain.Actor, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	if !actor.Role.CanManage() {
		return domain.Task{}, domain.ErrForbidden
	}
	if input.Empty() {
		return domain.Task{}, domain.ErrInvalidInput
	}
	if input.TitleSet && strings.TrimSpace(input.Title) == "" {
		return domain.Task{}, domain.ErrInvalidInput
	}
	if input.PrioritySet && !input.Priority.Valid() {
		return domain.Task{}, domain.ErrInvalidInput
	}
	if input.EstimatedHoursSet && input.EstimatedHours < 0 {
		return domain.Task{}, domain.ErrInvalidInput
	}

	current, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if current.Status.Terminal() {
		return domain.Task{}, domain.ErrInvalidState
	}

	now := s.clock.Now()
	return s.tasks.CompareAndSwap(ctx, taskID, current.Version, func(t *domain.Task) error {
		if t.Status.Terminal() {
			return domain.ErrInvalidState
		}
		if input.TitleSet {
			t.Title = strings.TrimSpace(input.Title)
		}
		if input.DescriptionSet {
			t.Description = input.Description
		}
		if input.CategorySet {
			t.Category = input.Category
		}
		if input.LocationSet {
			t.Location = input.Location
		}
		if input.EquipmentSet {
			t.Equipment = input.Equipment
		}
		if input.PrioritySet {
			t.Priority = input.Priority
		}
		if input.EstimatedHoursSet {
			t.EstimatedHours = input.EstimatedHours
		}
		if input.DueDateSet {
			t.DueDate = input.DueDate
			// Pushing the due date into the future ends the current
			// overdue episode; the scanner may open a new one later.
			if input.DueDate == nil || input.DueDate.After(now) {
				t.OverdueNotifiedAt = nil
			}
		}
		return nil
	})
}

func (s *TaskService) checkAssignee(ctx context.Context, userID uint64) error {
	user, err := s.users.Lookup(ctx, userID)
	if err != nil {
		return domain.ErrInvalidAssignee
	}
	if !domain.EligibleAssignee(user) {
		return domain.ErrInvalidAssignee
	}
	return nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
