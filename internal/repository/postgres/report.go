package postgres

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type reportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) EquipmentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	return r.counts(ctx, `SELECT status, count(*) FROM equipment GROUP BY status ORDER BY status`)
}

func (r *reportRepository) IncidentCountsByType(ctx context.Context) ([]domain.StatusCount, error) {
	return r.counts(ctx, `SELECT incident_type, count(*) FROM incidents GROUP BY incident_type ORDER BY incident_type`)
}

func (r *reportRepository) IncidentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	return r.counts(ctx, `SELECT status, count(*) FROM incidents GROUP BY status ORDER BY status`)
}

func (r *reportRepository) AgentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	return r.counts(ctx, `SELECT status, count(*) FROM agents GROUP BY status ORDER BY status`)
}

func (r *reportRepository) counts(ctx context.Context, query string) ([]domain.StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.StatusCount
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Label, &c.Total); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *reportRepository) OverdueAssignments(ctx context.Context, now time.Time) ([]repository.OverdueAssignment, error) {
	query := `SELECT a.id, e.serial_number, ag.identifier, ag.email, a.expected_return_at
	          FROM assignments a
	          JOIN equipment e ON e.id = a.equipment_id
	          JOIN agents ag ON ag.id = a.agent_id
	          WHERE a.is_active = true AND a.expected_return_at IS NOT NULL AND a.expected_return_at < $1
	          ORDER BY a.expected_return_at`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []repository.OverdueAssignment
	for rows.Next() {
		var o repository.OverdueAssignment
		if err := rows.Scan(&o.AssignmentID, &o.EquipmentSerial, &o.AgentIdentifier, &o.AgentEmail, &o.ExpectedReturnAt); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}
