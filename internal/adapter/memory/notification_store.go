package memory

import (
	"context"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// NotificationStore is an in-memory ports.NotificationStore. Inserts are
// append-only; the only mutation is the recipient flipping IsRead.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications []domain.Notification
}

var _ ports.NotificationStore = (*NotificationStore)(nil)

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

func (s *NotificationStore) Insert(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	s.mu.Unlock()
	return nil
}

func (s *NotificationStore) ListByUser(_ context.Context, userID uint64, unreadOnly bool) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first, matching the MySQL adapter's ORDER BY created_at DESC.
	result := make([]domain.Notification, 0)
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := s.notifications[i]
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (s *NotificationStore) CountUnread(_ context.Context, userID uint64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *NotificationStore) MarkRead(_ context.Context, id string, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id && s.notifications[i].UserID == userID {
			s.notifications[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}
