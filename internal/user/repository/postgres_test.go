package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/user"
)

func TestCreate_UniqueViolationMapsToErrEmailExists(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	defer db.Close()

	repo := NewPGRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = repo.Create(context.Background(), &model.User{
		ID:           "u1",
		Email:        "a@b.com",
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
		CreatedAt:    time.Now(),
	})
	require.ErrorIs(t, err, user.ErrEmailExists)
	require.NoError(t, mock.ExpectationsWereMet())
}
