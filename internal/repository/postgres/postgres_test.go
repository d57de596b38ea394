package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-housing-backend/internal/domain"
)

func TestStore_WithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM listings").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(ctx context.Context) error {
			return store.ListingRepository.Delete(ctx, 1)
		})
		assert.NoError(t, err)
	})

	t.Run("Rollback on error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM listings").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := store.WithinTx(ctx, func(ctx context.Context) error {
			return store.ListingRepository.Delete(ctx, 1)
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Nested call joins outer transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM listings").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM listings").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(ctx context.Context) error {
			if err := store.ListingRepository.Delete(ctx, 1); err != nil {
				return err
			}
			return store.WithinTx(ctx, func(ctx context.Context) error {
				return store.ListingRepository.Delete(ctx, 2)
			})
		})
		assert.NoError(t, err)
	})

	t.Run("Begin fails", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(assert.AnError)

		called := false
		err := store.WithinTx(ctx, func(ctx context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, called)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil, "listing"))
	assert.ErrorIs(t, mapError(sql.ErrNoRows, "listing"), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(&pq.Error{Code: pqUniqueViolation, Constraint: "idx_users_email_lower"}, "user"), domain.ErrConflict)
	assert.ErrorIs(t, mapError(&pq.Error{Code: pqForeignKeyViolation}, "review"), domain.ErrNotFound)
	assert.True(t, domain.IsValidation(mapError(&pq.Error{Code: pqCheckViolation, Constraint: "chk_reviews_rating"}, "review")))

	other := errors.New("connection reset")
	err := mapError(other, "booking")
	assert.ErrorIs(t, err, other)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
