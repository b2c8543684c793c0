package postgres

import (
	"context"
	"fmt"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type incidentRepository struct {
	db DBTX
}

func NewIncidentRepository(db DBTX) repository.IncidentRepository {
	return &incidentRepository{db: db}
}

const incidentColumns = `id, equipment_id, agent_id, reported_by, incident_type, description, status, reported_at, closed_at`

func (r *incidentRepository) Create(ctx context.Context, inc *domain.Incident) error {
	query := `INSERT INTO incidents (equipment_id, agent_id, reported_by, incident_type, description, status, reported_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, inc.EquipmentID, inc.AgentID, inc.ReportedBy, inc.Type, inc.Description, inc.Status, inc.ReportedAt).Scan(&inc.ID)
}

func (r *incidentRepository) GetByID(ctx context.Context, id int32) (*domain.Incident, error) {
	return r.get(ctx, id, false)
}

func (r *incidentRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Incident, error) {
	return r.get(ctx, id, true)
}

func (r *incidentRepository) get(ctx context.Context, id int32, forUpdate bool) (*domain.Incident, error) {
	inc := &domain.Incident{}
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&inc.ID, &inc.EquipmentID, &inc.AgentID, &inc.ReportedBy, &inc.Type, &inc.Description, &inc.Status, &inc.ReportedAt, &inc.ClosedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return inc, nil
}

func (r *incidentRepository) Close(ctx context.Context, id int32, closedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE incidents SET status=$1, closed_at=$2 WHERE id=$3`, domain.IncidentStatusClosed, closedAt, id)
	return err
}

func (r *incidentRepository) List(ctx context.Context, filter repository.IncidentFilter, page, pageSize int32) ([]domain.Incident, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE 1=1`

	var args []interface{}
	argIdx := 1
	if filter.Type != "" {
		query += fmt.Sprintf(" AND incident_type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.EquipmentID != 0 {
		query += fmt.Sprintf(" AND equipment_id = $%d", argIdx)
		args = append(args, filter.EquipmentID)
		argIdx++
	}
	if filter.AgentID != 0 {
		query += fmt.Sprintf(" AND agent_id = $%d", argIdx)
		args = append(args, filter.AgentID)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY reported_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Incident
	for rows.Next() {
		var inc domain.Incident
		if err := rows.Scan(&inc.ID, &inc.EquipmentID, &inc.AgentID, &inc.ReportedBy, &inc.Type, &inc.Description, &inc.Status, &inc.ReportedAt, &inc.ClosedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, inc)
	}
	return items, count, rows.Err()
}
