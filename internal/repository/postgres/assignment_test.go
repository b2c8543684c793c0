package postgres

import (
	"context"
	"testing"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestAssignmentRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	t.Run("returns the generated id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO assignments").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		a := &domain.Assignment{EquipmentID: 1, AgentID: 2, AssignedAt: time.Now(), IsActive: true}
		err := repo.Create(ctx, a)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), a.ID)
	})

	t.Run("second active assignment loses the race", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO assignments").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "assignments_one_active"})

		err := repo.Create(ctx, &domain.Assignment{EquipmentID: 1, AgentID: 2, IsActive: true})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestReturnRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewReturnRepository(db)
	ctx := context.Background()

	t.Run("returns the generated id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO returns").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		ret := &domain.Return{AssignmentID: 5, ReturnedAt: time.Now(), Condition: domain.ConditionGood}
		err := repo.Create(ctx, ret)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), ret.ID)
	})

	t.Run("double return maps to the domain error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO returns").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "returns_assignment_id_key"})

		err := repo.Create(ctx, &domain.Return{AssignmentID: 5, Condition: domain.ConditionGood})
		assert.ErrorIs(t, err, domain.ErrAlreadyReturned)
	})
}

func TestStoreWithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE assignments SET is_active").
			WithArgs(int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(r repository.Repos) error {
			return r.Assignments.Close(ctx, 5)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.WithinTx(ctx, func(r repository.Repos) error {
			return domain.ErrInvalidTransition
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
