package postgres

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type inviteRepository struct {
	db DBTX
}

func NewInviteRepository(db DBTX) repository.InviteRepository {
	return &inviteRepository{db: db}
}

const inviteColumns = `id, token, email, phone, notes, created_by, created_at, expires_at, used_at`

func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `INSERT INTO invites (token, email, phone, notes, created_by, created_at, expires_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	inv.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, inv.Token, inv.Email, inv.Phone, inv.Notes, inv.CreatedBy, inv.CreatedAt, inv.ExpiresAt).Scan(&inv.ID)
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*domain.Invite, error) {
	inv := &domain.Invite{}
	query := `SELECT ` + inviteColumns + ` FROM invites WHERE token = $1`
	err := r.db.QueryRowContext(ctx, query, token).Scan(&inv.ID, &inv.Token, &inv.Email, &inv.Phone, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.ExpiresAt, &inv.UsedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return inv, nil
}

func (r *inviteRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM invites WHERE token = $1)`, token).Scan(&exists)
	return exists, err
}

// MarkUsed stamps used_at only while it is still null. The WHERE clause is the
// compare-and-swap; a concurrent consumer sees zero rows affected.
func (r *inviteRepository) MarkUsed(ctx context.Context, token string, usedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE invites SET used_at = $1 WHERE token = $2 AND used_at IS NULL`, usedAt, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *inviteRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Invite, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM invites`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + inviteColumns + ` FROM invites ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Invite
	for rows.Next() {
		var inv domain.Invite
		if err := rows.Scan(&inv.ID, &inv.Token, &inv.Email, &inv.Phone, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.ExpiresAt, &inv.UsedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, count, rows.Err()
}

func (r *inviteRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE used_at IS NULL AND expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
