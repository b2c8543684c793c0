package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"

	"github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so every
// repository can run either auto-commit or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db    *sql.DB
	repos repository.Repos
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repos: newRepos(db)}
}

func newRepos(db DBTX) repository.Repos {
	return repository.Repos{
		Users:       NewUserRepository(db),
		Agents:      NewAgentRepository(db),
		Equipment:   NewEquipmentRepository(db),
		Assignments: NewAssignmentRepository(db),
		Returns:     NewReturnRepository(db),
		Incidents:   NewIncidentRepository(db),
		Invites:     NewInviteRepository(db),
		Audit:       NewAuditRepository(db),
		Reports:     NewReportRepository(db),
	}
}

func (s *Store) Repos() repository.Repos {
	return s.repos
}

// WithinTx runs fn with all repositories bound to a single transaction. fn
// returning nil commits; anything else rolls back.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(newRepos(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// notFound maps the driver's empty-result error to the domain error kind.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// uniqueViolation reports whether err is a postgres unique-constraint
// violation on a constraint whose name contains the given fragment.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, constraint)
	}
	return false
}
