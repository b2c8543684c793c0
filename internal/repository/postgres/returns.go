package postgres

import (
	"context"
	"fmt"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type returnRepository struct {
	db DBTX
}

func NewReturnRepository(db DBTX) repository.ReturnRepository {
	return &returnRepository{db: db}
}

const returnColumns = `id, assignment_id, received_by, returned_at, condition, notes, equipment_photo_path`

func (r *returnRepository) Create(ctx context.Context, ret *domain.Return) error {
	query := `INSERT INTO returns (assignment_id, received_by, returned_at, condition, notes, equipment_photo_path)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, ret.AssignmentID, ret.ReceivedBy, ret.ReturnedAt, ret.Condition, ret.Notes, ret.EquipmentPhotoPath).Scan(&ret.ID)
	// One return per assignment, enforced by the unique constraint.
	if uniqueViolation(err, "assignment") {
		return domain.ErrAlreadyReturned
	}
	return err
}

func (r *returnRepository) GetByAssignmentID(ctx context.Context, assignmentID int32) (*domain.Return, error) {
	ret := &domain.Return{}
	query := `SELECT ` + returnColumns + ` FROM returns WHERE assignment_id = $1`
	err := r.db.QueryRowContext(ctx, query, assignmentID).Scan(&ret.ID, &ret.AssignmentID, &ret.ReceivedBy, &ret.ReturnedAt, &ret.Condition, &ret.Notes, &ret.EquipmentPhotoPath)
	if err != nil {
		return nil, notFound(err)
	}
	return ret, nil
}

func (r *returnRepository) List(ctx context.Context, filter repository.ReturnFilter, page, pageSize int32) ([]domain.Return, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + returnColumns + ` FROM returns WHERE 1=1`

	var args []interface{}
	argIdx := 1
	if filter.Condition != "" {
		query += fmt.Sprintf(" AND condition = $%d", argIdx)
		args = append(args, filter.Condition)
		argIdx++
	}
	if filter.ReturnedAfter != nil {
		query += fmt.Sprintf(" AND returned_at >= $%d", argIdx)
		args = append(args, *filter.ReturnedAfter)
		argIdx++
	}
	if filter.ReturnedBefore != nil {
		query += fmt.Sprintf(" AND returned_at <= $%d", argIdx)
		args = append(args, *filter.ReturnedBefore)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY returned_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Return
	for rows.Next() {
		var ret domain.Return
		if err := rows.Scan(&ret.ID, &ret.AssignmentID, &ret.ReceivedBy, &ret.ReturnedAt, &ret.Condition, &ret.Notes, &ret.EquipmentPhotoPath); err != nil {
			return nil, 0, err
		}
		items = append(items, ret)
	}
	return items, count, rows.Err()
}
