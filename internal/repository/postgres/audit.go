package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type auditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, entry *domain.AuditLog) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}
	query := `INSERT INTO audit_logs (user_id, action, target_type, target_id, details, ip_address, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	entry.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, entry.UserID, entry.Action, entry.TargetType, entry.TargetID, details, entry.IPAddress, entry.CreatedAt).Scan(&entry.ID)
}

func (r *auditRepository) List(ctx context.Context, filter repository.AuditFilter, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, action, target_type, target_id, details, ip_address, created_at FROM audit_logs WHERE 1=1`

	var args []interface{}
	argIdx := 1
	if filter.UserID != 0 {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, filter.Action)
		argIdx++
	}
	if filter.TargetType != "" {
		query += fmt.Sprintf(" AND target_type = $%d", argIdx)
		args = append(args, filter.TargetType)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.TargetType, &entry.TargetID, &details, &entry.IPAddress, &entry.CreatedAt); err != nil {
			return nil, 0, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, 0, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, count, rows.Err()
}
