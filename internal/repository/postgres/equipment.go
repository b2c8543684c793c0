package postgres

import (
	"context"
	"fmt"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type equipmentRepository struct {
	db DBTX
}

func NewEquipmentRepository(db DBTX) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, type, serial_number, imei, status, condition, qr_code_path, created_at, updated_at`

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (type, serial_number, imei, status, condition, qr_code_path, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, eq.Type, eq.SerialNumber, eq.IMEI, eq.Status, eq.Condition, eq.QRCodePath, now, now).Scan(&eq.ID)
	if uniqueViolation(err, "serial") {
		return domain.ErrDuplicateSerial
	}
	return err
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	return r.get(ctx, id, false)
}

func (r *equipmentRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Equipment, error) {
	return r.get(ctx, id, true)
}

func (r *equipmentRepository) get(ctx context.Context, id int32, forUpdate bool) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&eq.ID, &eq.Type, &eq.SerialNumber, &eq.IMEI, &eq.Status, &eq.Condition, &eq.QRCodePath, &eq.CreatedAt, &eq.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return eq, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	_, err := r.db.ExecContext(ctx, `UPDATE equipment SET imei=$1, status=$2, condition=$3, updated_at=$4 WHERE id=$5`,
		eq.IMEI, eq.Status, eq.Condition, time.Now(), eq.ID)
	return err
}

func (r *equipmentRepository) SetStatus(ctx context.Context, id int32, status domain.EquipmentStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE equipment SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now(), id)
	return err
}

func (r *equipmentRepository) SetStatusAndCondition(ctx context.Context, id int32, status domain.EquipmentStatus, condition domain.EquipmentCondition) error {
	_, err := r.db.ExecContext(ctx, `UPDATE equipment SET status=$1, condition=$2, updated_at=$3 WHERE id=$4`, status, condition, time.Now(), id)
	return err
}

func (r *equipmentRepository) SetQRCodePath(ctx context.Context, id int32, path string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE equipment SET qr_code_path=$1, updated_at=$2 WHERE id=$3`, path, time.Now(), id)
	return err
}

func (r *equipmentRepository) List(ctx context.Context, filter repository.EquipmentFilter, page, pageSize int32) ([]domain.Equipment, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE 1=1`

	var args []interface{}
	argIdx := 1
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Condition != "" {
		query += fmt.Sprintf(" AND condition = $%d", argIdx)
		args = append(args, filter.Condition)
		argIdx++
	}
	if filter.SerialNumber != "" {
		query += fmt.Sprintf(" AND serial_number = $%d", argIdx)
		args = append(args, filter.SerialNumber)
		argIdx++
	}
	if filter.IMEI != "" {
		query += fmt.Sprintf(" AND imei = $%d", argIdx)
		args = append(args, filter.IMEI)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(&eq.ID, &eq.Type, &eq.SerialNumber, &eq.IMEI, &eq.Status, &eq.Condition, &eq.QRCodePath, &eq.CreatedAt, &eq.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, eq)
	}
	return items, count, rows.Err()
}
