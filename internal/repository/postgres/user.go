package postgres

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, phone, first_name, last_name, role, password_hash, is_active, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, email, phone, first_name, last_name, role, password_hash, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, u.Username, u.Email, u.Phone, u.FirstName, u.LastName, u.Role, u.PasswordHash, u.IsActive, now, now).Scan(&u.ID)
	if uniqueViolation(err, "username") {
		return domain.ErrDuplicateUsername
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.FirstName, &u.LastName, &u.Role, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) GetByLoginIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE username = $1 OR lower(email) = lower($1) OR phone = $1
	             OR id IN (SELECT user_id FROM agents WHERE identifier = $1 AND user_id IS NOT NULL)
	          LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, identifier).Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.FirstName, &u.LastName, &u.Role, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *userRepository) List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.FirstName, &u.LastName, &u.Role, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, count, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, phone=$2, first_name=$3, last_name=$4, role=$5, password_hash=$6, is_active=$7, updated_at=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Phone, u.FirstName, u.LastName, u.Role, u.PasswordHash, u.IsActive, time.Now(), u.ID)
	return err
}
