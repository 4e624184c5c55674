package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const taskColumns = `
  id, title, description, category, location, equipment,
  priority, status, assigned_to, assigned_by, estimated_hours,
  progress_percentage, due_date, overdue_notified_at, completed_date,
  created_at, updated_at, version
`

const insertTaskQuery = `
INSERT INTO tasks (
  title, description, category, location, equipment,
  priority, status, assigned_to, assigned_by, estimated_hours,
  progress_percentage, due_date, version
) VALUES (
  :title, :description, :category, :location, :equipment,
  :priority, :status, :assigned_to, :assigned_by, :estimated_hours,
  :progress_percentage, :due_date, 1
);
`

const getTaskQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?;`

// casUpdateQuery commits the mutated snapshot only if nobody else has
// advanced the version since the snapshot was read.
const casUpdateQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  category = :category,
  location = :location,
  equipment = :equipment,
  priority = :priority,
  status = :status,
  assigned_to = :assigned_to,
  assigned_by = :assigned_by,
  estimated_hours = :estimated_hours,
  progress_percentage = :progress_percentage,
  due_date = :due_date,
  overdue_notified_at = :overdue_notified_at,
  completed_date = :completed_date,
  updated_at = :updated_at,
  version = :version
WHERE id = :id AND version = :expected_version;
`

const listOverdueQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE due_date IS NOT NULL
  AND due_date < ?
  AND status NOT IN ('completed', 'cancelled')
  AND overdue_notified_at IS NULL
ORDER BY id;
`

const statusCountsQuery = `
SELECT status, COUNT(*) AS total
FROM tasks
WHERE assigned_to = ?
GROUP BY status;
`

const countCompletedQuery = `
SELECT COUNT(*)
FROM tasks
WHERE assigned_to = ?
  AND completed_date IS NOT NULL
  AND completed_date >= ?
  AND completed_date < ?;
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID                uint64        `db:"id"`
	Title             string        `db:"title"`
	Description       string        `db:"description"`
	Category          string        `db:"category"`
	Location          string        `db:"location"`
	Equipment         string        `db:"equipment"`
	Priority          string        `db:"priority"`
	Status            string        `db:"status"`
	AssignedTo        sql.NullInt64 `db:"assigned_to"`
	AssignedBy        uint64        `db:"assigned_by"`
	EstimatedHours    float64       `db:"estimated_hours"`
	Progress          int           `db:"progress_percentage"`
	DueDate           sql.NullTime  `db:"due_date"`
	OverdueNotifiedAt sql.NullTime  `db:"overdue_notified_at"`
	CompletedDate     sql.NullTime  `db:"completed_date"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
	Version           int64         `db:"version"`
	ExpectedVersion   int64         `db:"expected_version"`
}

var _ ports.TaskStore = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	res, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToRow(task, 0))
	if err != nil {
		return domain.Task{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}
	return r.Get(ctx, uint64(id))
}

func (r *TaskRepository) Get(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter, page domain.Page) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := []any{}

	if filter.AssignedTo != nil {
		query += " AND assigned_to = ?"
		args = append(args, *filter.AssignedTo)
	}
	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*filter.Status))
	}
	if filter.Priority != nil {
		query += " AND priority = ?"
		args = append(args, string(*filter.Priority))
	}

	query += " ORDER BY id"
	if page.PerPage > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, page.PerPage, page.Offset())
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (r *TaskRepository) CompareAndSwap(ctx context.Context, id uint64, expectedVersion int64, mutate func(*domain.Task) error) (domain.Task, error) {
	snapshot, err := r.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if snapshot.Version != expectedVersion {
		return domain.Task{}, domain.ErrVersionConflict
	}

	if err := mutate(&snapshot); err != nil {
		return domain.Task{}, err
	}
	snapshot.ID = id
	snapshot.Version = expectedVersion + 1
	snapshot.UpdatedAt = time.Now()

	res, err := r.db.NamedExecContext(ctx, casUpdateQuery, mapDomainTaskToRow(snapshot, expectedVersion))
	if err != nil {
		return domain.Task{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Task{}, err
	}
	if affected == 0 {
		// Someone committed between our read and write.
		return domain.Task{}, domain.ErrVersionConflict
	}
	return snapshot, nil
}

func (r *TaskRepository) ListOverdueUnnotified(ctx context.Context, now time.Time) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listOverdueQuery, now); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (r *TaskRepository) StatusCounts(ctx context.Context, userID uint64) (map[domain.TaskStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Total  int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, statusCountsQuery, userID); err != nil {
		return nil, err
	}

	counts := make(map[domain.TaskStatus]int, len(rows))
	for _, row := range rows {
		counts[domain.TaskStatus(row.Status)] = row.Total
	}
	return counts, nil
}

func (r *TaskRepository) CountCompletedBetween(ctx context.Context, userID uint64, from, to time.Time) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, countCompletedQuery, userID, from, to); err != nil {
		return 0, err
	}
	return count, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		Category:       row.Category,
		Location:       row.Location,
		Equipment:      row.Equipment,
		Priority:       domain.TaskPriority(row.Priority),
		Status:         domain.TaskStatus(row.Status),
		AssignedBy:     row.AssignedBy,
		EstimatedHours: row.EstimatedHours,
		Progress:       row.Progress,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		Version:        row.Version,
	}

	if row.AssignedTo.Valid {
		value := uint64(row.AssignedTo.Int64)
		task.AssignedTo = &value
	}
	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}
	if row.OverdueNotifiedAt.Valid {
		value := row.OverdueNotifiedAt.Time
		task.OverdueNotifiedAt = &value
	}
	if row.CompletedDate.Valid {
		value := row.CompletedDate.Time
		task.CompletedDate = &value
	}
	return task
}

func mapDomainTaskToRow(task domain.Task, expectedVersion int64) taskRow {
	row := taskRow{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Category:        task.Category,
		Location:        task.Location,
		Equipment:       task.Equipment,
		Priority:        string(task.Priority),
		Status:          string(task.Status),
		AssignedBy:      task.AssignedBy,
		EstimatedHours:  task.EstimatedHours,
		Progress:        task.Progress,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
		Version:         task.Version,
		ExpectedVersion: expectedVersion,
	}

	if task.AssignedTo != nil {
		row.AssignedTo = sql.NullInt64{Int64: int64(*task.AssignedTo), Valid: true}
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	if task.OverdueNotifiedAt != nil {
		row.OverdueNotifiedAt = sql.NullTime{Time: *task.OverdueNotifiedAt, Valid: true}
	}
	if task.CompletedDate != nil {
		row.CompletedDate = sql.NullTime{Time: *task.CompletedDate, Valid: true}
	}
	return row
}
