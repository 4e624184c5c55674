package memory

import (
	"context"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// UserDirectory is an in-memory ports.UserDirectory for tests and dev mode.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[uint64]domain.User
}

var _ ports.UserDirectory = (*UserDirectory)(nil)

func NewUserDirectory(users ...domain.User) *UserDirectory {
	d := &UserDirectory{users: make(map[uint64]domain.User)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *UserDirectory) Put(u domain.User) {
	d.mu.Lock()
	d.users[u.ID] = u
	d.mu.Unlock()
}

func (d *UserDirectory) Lookup(_ context.Context, id uint64) (domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}
