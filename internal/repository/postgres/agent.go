package postgres

import (
	"context"
	"fmt"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type agentRepository struct {
	db DBTX
}

func NewAgentRepository(db DBTX) repository.AgentRepository {
	return &agentRepository{db: db}
}

const agentColumns = `id, user_id, identifier, first_name, last_name, phone, email, address, id_number, id_document_path, project_type, status, created_at, updated_at`

func (r *agentRepository) Create(ctx context.Context, a *domain.Agent) error {
	query := `INSERT INTO agents (user_id, identifier, first_name, last_name, phone, email, address, id_number, id_document_path, project_type, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.Identifier, a.FirstName, a.LastName, a.Phone, a.Email, a.Address, a.IDNumber, a.IDDocumentPath, a.ProjectType, a.Status, now, now).Scan(&a.ID)
	if uniqueViolation(err, "identifier") {
		return domain.ErrDuplicateIdentifier
	}
	return err
}

func (r *agentRepository) GetByID(ctx context.Context, id int32) (*domain.Agent, error) {
	a := &domain.Agent{}
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.UserID, &a.Identifier, &a.FirstName, &a.LastName, &a.Phone, &a.Email, &a.Address, &a.IDNumber, &a.IDDocumentPath, &a.ProjectType, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *agentRepository) IdentifierExists(ctx context.Context, identifier string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM agents WHERE identifier = $1)`, identifier).Scan(&exists)
	return exists, err
}

func (r *agentRepository) List(ctx context.Context, filter repository.AgentFilter, page, pageSize int32) ([]domain.Agent, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + agentColumns + ` FROM agents WHERE 1=1`

	var args []interface{}
	argIdx := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Identifier != "" {
		query += fmt.Sprintf(" AND identifier = $%d", argIdx)
		args = append(args, filter.Identifier)
		argIdx++
	}
	if filter.Name != "" {
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Name+"%")
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

	var agents []domain.Agent
	for rows.Next() {
		var a domain.Agent
		if err := rows.Scan(&a.ID, &a.UserID, &a.Identifier, &a.FirstName, &a.LastName, &a.Phone, &a.Email, &a.Address, &a.IDNumber, &a.IDDocumentPath, &a.ProjectType, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		agents = append(agents, a)
	}
	return agents, count, rows.Err()
}

func (r *agentRepository) Update(ctx context.Context, a *domain.Agent) error {
	query := `UPDATE agents SET user_id=$1, first_name=$2, last_name=$3, phone=$4, email=$5, address=$6, id_number=$7, id_document_path=$8, project_type=$9, status=$10, updated_at=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, a.UserID, a.FirstName, a.LastName, a.Phone, a.Email, a.Address, a.IDNumber, a.IDDocumentPath, a.ProjectType, a.Status, time.Now(), a.ID)
	return err
}
