package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const insertNotificationQuery = `
INSERT INTO notifications (id, user_id, task_id, kind, message, is_read, created_at)
VALUES (:id, :user_id, :task_id, :kind, :message, :is_read, :created_at);
`

const listNotificationsQuery = `
SELECT id, user_id, task_id, kind, message, is_read, created_at
FROM notifications
WHERE user_id = ?
ORDER BY created_at DESC, id DESC;
`

const listUnreadNotificationsQuery = `
SELECT id, user_id, task_id, kind, message, is_read, created_at
FROM notifications
WHERE user_id = ? AND is_read = FALSE
ORDER BY created_at DESC, id DESC;
`

const countUnreadQuery = `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = FALSE;`

const markReadQuery = `UPDATE notifications SET is_read = TRUE WHERE id = ? AND user_id = ?;`

type NotificationRepository struct {
	db *sqlx.DB
}

type notificationRow struct {
	ID        string    `db:"id"`
	UserID    uint64    `db:"user_id"`
	TaskID    uint64    `db:"task_id"`
	Kind      string    `db:"kind"`
	Message   string    `db:"message"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

var _ ports.NotificationStore = (*NotificationRepository)(nil)

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n domain.Notification) error {
	_, err := r.db.NamedExecContext(ctx, insertNotificationQuery, notificationRow{
		ID:        n.ID,
		UserID:    n.UserID,
		TaskID:    n.TaskID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	})
	return err
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64, unreadOnly bool) ([]domain.Notification, error) {
	query := listNotificationsQuery
	if unreadOnly {
		query = listUnreadNotificationsQuery
	}

	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, domain.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			TaskID:    row.TaskID,
			Kind:      domain.NotificationKind(row.Kind),
			Message:   row.Message,
			IsRead:    row.IsRead,
			CreatedAt: row.CreatedAt,
		})
	}
	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, countUnreadQuery, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string, userID uint64) error {
	res, err := r.db.ExecContext(ctx, markReadQuery, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
