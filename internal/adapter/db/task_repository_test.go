package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"taskboard/internal/core/domain"
)

func newMockRepo(t *testing.T) (*TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewTaskRepository(sqlx.NewDb(mockDB, "mysql")), mock
}

func taskRowColumns() []string {
	return []string{
		"id", "title", "description", "category", "location", "equipment",
		"priority", "status", "assigned_to", "assigned_by", "estimated_hours",
		"progress_percentage", "due_date", "overdue_notified_at", "completed_date",
		"created_at", "updated_at", "version",
	}
}

func storedTaskRow(version int64) *sqlmock.Rows {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(taskRowColumns()).AddRow(
		1, "rebuild pump", "", "maintenance", "hall 2", "press #4",
		"high", "in_progress", 5, 10, 4.5,
		40, nil, nil, nil,
		now, now, version,
	)
}

func TestGet_MapsRowToDomain(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = ?").
		WithArgs(uint64(1)).
		WillReturnRows(storedTaskRow(5))

	task, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), task.ID)
	require.Equal(t, domain.TaskStatusInProgress, task.Status)
	require.Equal(t, domain.TaskPriorityHigh, task.Priority)
	require.True(t, task.AssignedToUser(5))
	require.Equal(t, int64(5), task.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = ?").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns()))

	_, err := repo.Get(context.Background(), 9)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareAndSwap_CommitsWhenVersionMatches(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = ?").
		WithArgs(uint64(1)).
		WillReturnRows(storedTaskRow(5))
	mock.ExpectExec("UPDATE tasks SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	task, err := repo.CompareAndSwap(context.Background(), 1, 5, func(t *domain.Task) error {
		t.Status = domain.TaskStatusCompleted
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, task.Status)
	require.Equal(t, int64(6), task.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareAndSwap_StaleExpectedVersionSkipsWrite(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = ?").
		WithArgs(uint64(1)).
		WillReturnRows(storedTaskRow(7))

	_, err := repo.CompareAndSwap(context.Background(), 1, 5, func(t *domain.Task) error {
		t.Status = domain.TaskStatusCompleted
		return nil
	})
	require.ErrorIs(t, err, domain.ErrVersionConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareAndSwap_RacedWriteSurfacesConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = ?").
		WithArgs(uint64(1)).
		WillReturnRows(storedTaskRow(5))
	// Another writer committed between our read and our write.
	mock.ExpectExec("UPDATE tasks SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.CompareAndSwap(context.Background(), 1, 5, func(t *domain.Task) error {
		t.Status = domain.TaskStatusCompleted
		return nil
	})
	require.ErrorIs(t, err, domain.ErrVersionConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareAndSwap_MutatorErrorSkipsWrite(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = ?").
		WithArgs(uint64(1)).
		WillReturnRows(storedTaskRow(5))

	_, err := repo.CompareAndSwap(context.Background(), 1, 5, func(t *domain.Task) error {
		return domain.ErrInvalidState
	})
	require.ErrorIs(t, err, domain.ErrInvalidState)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusCounts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) AS total").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).
			AddRow("pending", 2).
			AddRow("completed", 3))

	counts, err := repo.StatusCounts(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 2, counts[domain.TaskStatusPending])
	require.Equal(t, 3, counts[domain.TaskStatusCompleted])
	require.NoError(t, mock.ExpectationsWereMet())
}
