package postgres

import (
	"context"
	"testing"
	"time"

	"dailypay-backend/internal/domain/product"
	"dailypay-backend/internal/domain/transaction"
	"dailypay-backend/internal/domain/user"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	return &DB{DB: gdb}, mock
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &user.User{Name: "A", Email: "a@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, user.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	u := &user.User{Name: "A", Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("ghost@x.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_ConsumeResetToken(t *testing.T) {
	now := time.Now()

	t.Run("guarded update hits", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET .* WHERE email = \$\d+ AND reset_password_token = \$\d+ AND reset_password_expires > \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ConsumeResetToken(context.Background(), "a@x.com", "hashed", now, "newhash")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ConsumeResetToken(context.Background(), "a@x.com", "used", now, "newhash")
		assert.ErrorIs(t, err, appErrors.ErrInvalidOrExpiredToken)
	})
}

func TestUserRepository_SetBannedMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET .*"banned"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetBanned(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSellerRepository_ClearExpiredResetTokens(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSellerRepository(db)

	mock.ExpectExec(`UPDATE "sellers" SET .* WHERE reset_password_expires IS NOT NULL AND reset_password_expires <= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ClearExpiredResetTokens(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestProductRepository_ReserveStock(t *testing.T) {
	id := uuid.New()

	t.Run("enough on hand", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProductRepository(db)

		mock.ExpectExec(`UPDATE "products" SET "qty"=qty - \$1 WHERE id = \$2 AND qty >= \$3`).
			WithArgs(2, id, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ReserveStock(context.Background(), id, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("would oversell", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProductRepository(db)

		mock.ExpectExec(`UPDATE "products" SET "qty"=qty - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.ReserveStock(context.Background(), id, 5), product.ErrInsufficientStock)
	})
}

func TestProductRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`DELETE FROM "products"`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), product.ErrProductNotFound)
}

func TestTransactionRepository_SumSales(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	sellerID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "transactions" WHERE seller_id = \$1 AND type = \$2`).
		WithArgs(sellerID, "sale").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("125.50"))

	total, err := repo.SumSales(context.Background(), sellerID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("125.50")))
}

func TestTransactionRepository_UpdateStatusGuarded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectExec(`UPDATE "transactions" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), uuid.New(), transaction.StatusRequested, transaction.StatusApproved)
	assert.ErrorIs(t, err, transaction.ErrStatusChanged)
}
