package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const getUserQuery = `SELECT id, name, role, active FROM users WHERE id = ?;`

// UserRepository is the read-only view onto the user directory owned by the
// authentication collaborator.
type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID     uint64 `db:"id"`
	Name   string `db:"name"`
	Role   string `db:"role"`
	Active bool   `db:"active"`
}

var _ ports.UserDirectory = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Lookup(ctx context.Context, id uint64) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, getUserQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return domain.User{
		ID:     row.ID,
		Name:   row.Name,
		Role:   domain.Role(row.Role),
		Active: row.Active,
	}, nil
}
