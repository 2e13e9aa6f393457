package repository

import (
	"context"
	"errors"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles directory data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, role, password_hash, status, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Role, &u.PasswordHash, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("get user by id", err)
	}
	return u, nil
}

// GetByName retrieves a user by their unique display name.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, role, password_hash, status, created_at, updated_at
		 FROM users WHERE name = $1`, name,
	).Scan(&u.ID, &u.Name, &u.Role, &u.PasswordHash, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("get user by name", err)
	}
	return u, nil
}

// List retrieves the full directory ordered for deterministic display.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, role, password_hash, status, created_at, updated_at
		 FROM users ORDER BY name, id`)
	if err != nil {
		return nil, classify("list users", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.PasswordHash, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, classify("scan user", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListActiveTeachers computes the availability index: active teachers only,
// ordered by name with id as tiebreaker. Always a fresh query — the index is
// never cached across mutations.
func (r *UserRepository) ListActiveTeachers(ctx context.Context) ([]model.TeacherOption, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM users
		 WHERE role = $1 AND status = $2
		 ORDER BY name, id`,
		model.RoleTeacher, model.StatusActive)
	if err != nil {
		return nil, classify("list active teachers", err)
	}
	defer rows.Close()

	var teachers []model.TeacherOption
	for rows.Next() {
		var t model.TeacherOption
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, classify("scan teacher", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// Create inserts a new user. New rows default to Active.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, role, password_hash, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Role, u.PasswordHash, u.Status,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return classify("create user", err)
	}
	return nil
}

// Update modifies a user's name and role. Appointments referencing the id
// are untouched.
func (r *UserRepository) Update(ctx context.Context, id int, name string, role model.Role) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $1, role = $2, updated_at = NOW() WHERE id = $3`,
		name, role, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return classify("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus sets a user's status. Idempotent: setting the current status
// again succeeds without effect.
func (r *UserRepository) SetStatus(ctx context.Context, id int, status model.UserStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return classify("set user status", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user row. The caller must have verified no appointments
// reference the id; a lingering FK reference still fails at the constraint.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return classify("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
