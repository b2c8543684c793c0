package postgres

import (
	"context"
	"fmt"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type assignmentRepository struct {
	db DBTX
}

func NewAssignmentRepository(db DBTX) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

const assignmentColumns = `id, equipment_id, agent_id, assigned_by, assigned_at, expected_return_at, signature_path, equipment_photo_path, notes, is_active`

func (r *assignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (equipment_id, agent_id, assigned_by, assigned_at, expected_return_at, signature_path, equipment_photo_path, notes, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, a.EquipmentID, a.AgentID, a.AssignedBy, a.AssignedAt, a.ExpectedReturnAt, a.SignaturePath, a.EquipmentPhotoPath, a.Notes, a.IsActive).Scan(&a.ID)
	// The partial unique index on active assignments is the storage backstop
	// behind the status guard.
	if uniqueViolation(err, "assignments_one_active") {
		return domain.ErrInvalidTransition
	}
	return err
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int32) (*domain.Assignment, error) {
	return r.get(ctx, id, false)
}

func (r *assignmentRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Assignment, error) {
	return r.get(ctx, id, true)
}

func (r *assignmentRepository) get(ctx context.Context, id int32, forUpdate bool) (*domain.Assignment, error) {
	a := &domain.Assignment{}
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.EquipmentID, &a.AgentID, &a.AssignedBy, &a.AssignedAt, &a.ExpectedReturnAt, &a.SignaturePath, &a.EquipmentPhotoPath, &a.Notes, &a.IsActive)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *assignmentRepository) Close(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE assignments SET is_active = false WHERE id = $1`, id)
	return err
}

func (r *assignmentRepository) List(ctx context.Context, filter repository.AssignmentFilter, page, pageSize int32) ([]domain.Assignment, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE 1=1`

	var args []interface{}
	argIdx := 1
	if filter.AgentID != 0 {
		query += fmt.Sprintf(" AND agent_id = $%d", argIdx)
		args = append(args, filter.AgentID)
		argIdx++
	}
	if filter.EquipmentID != 0 {
		query += fmt.Sprintf(" AND equipment_id = $%d", argIdx)
		args = append(args, filter.EquipmentID)
		argIdx++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.AssignedAfter != nil {
		query += fmt.Sprintf(" AND assigned_at >= $%d", argIdx)
		args = append(args, *filter.AssignedAfter)
		argIdx++
	}
	if filter.AssignedBefore != nil {
		query += fmt.Sprintf(" AND assigned_at <= $%d", argIdx)
		args = append(args, *filter.AssignedBefore)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY assigned_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.EquipmentID, &a.AgentID, &a.AssignedBy, &a.AssignedAt, &a.ExpectedReturnAt, &a.SignaturePath, &a.EquipmentPhotoPath, &a.Notes, &a.IsActive); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, count, rows.Err()
}
