package memory

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// TaskStore is an in-memory ports.TaskStore used by unit tests and the
// no-database dev mode. Optimistic concurrency matches the MySQL adapter:
// mutations run on a snapshot and commit only when the stored version is
// still the expected one.
type TaskStore struct {
	mu     sync.RWMutex
	nextID uint64
	tasks  map[uint64]domain.Task
	now    func() time.Time
}

var _ ports.TaskStore = (*TaskStore)(nil)

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[uint64]domain.Task),
		now:   time.Now,
	}
}

// SetClock overrides the store's time source for deterministic tests.
func (s *TaskStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *TaskStore) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	task.ID = s.nextID
	task.Version = 1
	task.CreatedAt = s.now()
	task.UpdatedAt = task.CreatedAt

	s.tasks[task.ID] = cloneTask(task)
	return task, nil
}

func (s *TaskStore) Get(_ context.Context, id uint64) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (s *TaskStore) List(_ context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Task, 0, len(s.tasks))
	for id := uint64(1); id <= s.nextID; id++ {
		task, ok := s.tasks[id]
		if !ok {
			continue
		}
		if filter.AssignedTo != nil && !task.AssignedToUser(*filter.AssignedTo) {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		matched = append(matched, cloneTask(task))
	}

	if page.PerPage <= 0 {
		return matched, nil
	}
	offset := page.Offset()
	if offset >= len(matched) {
		return []domain.Task{}, nil
	}
	end := offset + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *TaskStore) CompareAndSwap(_ context.Context, id uint64, expectedVersion int64, mutate func(*domain.Task) error) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if stored.Version != expectedVersion {
		return domain.Task{}, domain.ErrVersionConflict
	}

	snapshot := cloneTask(stored)
	if err := mutate(&snapshot); err != nil {
		return domain.Task{}, err
	}

	// Identity and bookkeeping fields are the store's, not the mutator's.
	snapshot.ID = stored.ID
	snapshot.CreatedAt = stored.CreatedAt
	snapshot.Version = expectedVersion + 1
	snapshot.UpdatedAt = s.now()

	s.tasks[id] = cloneTask(snapshot)
	return snapshot, nil
}

func (s *TaskStore) ListOverdueUnnotified(_ context.Context, now time.Time) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var overdue []domain.Task
	for id := uint64(1); id <= s.nextID; id++ {
		task, ok := s.tasks[id]
		if !ok {
			continue
		}
		if task.Overdue(now) && task.OverdueNotifiedAt == nil {
			overdue = append(overdue, cloneTask(task))
		}
	}
	return overdue, nil
}

func (s *TaskStore) StatusCounts(_ context.Context, userID uint64) (map[domain.TaskStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.TaskStatus]int)
	for _, task := range s.tasks {
		if task.AssignedToUser(userID) {
			counts[task.Status]++
		}
	}
	return counts, nil
}

func (s *TaskStore) CountCompletedBetween(_ context.Context, userID uint64, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, task := range s.tasks {
		if !task.AssignedToUser(userID) || task.CompletedDate == nil {
			continue
		}
		completed := *task.CompletedDate
		if !completed.Before(from) && completed.Before(to) {
			count++
		}
	}
	return count, nil
}

// cloneTask deep-copies pointer fields so callers can never alias stored state.
func cloneTask(t domain.Task) domain.Task {
	c := t
	c.AssignedTo = cloneUint64(t.AssignedTo)
	c.DueDate = cloneTime(t.DueDate)
	c.OverdueNotifiedAt = cloneTime(t.OverdueNotifiedAt)
	c.CompletedDate = cloneTime(t.CompletedDate)
	return c
}

func cloneUint64(v *uint64) *uint64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
