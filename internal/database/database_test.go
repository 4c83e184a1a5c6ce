package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jsonblog/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DB{
		DbHOST:     "db",
		DbPORT:     "5432",
		DbUSER:     "blog",
		DbPASSWORD: "pw",
		DbNAME:     "microblog",
		DbSSLMODE:  "disable",
	})

	assert.Equal(t, "host=db port=5432 user=blog password=pw dbname=microblog sslmode=disable", dsn)
}

func TestDB_RunMigrations(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer sqlDB.Close()

	db := New(sqlx.NewDb(sqlDB, "sqlmock"), zap.NewNop())

	t.Run("applies schema", func(t *testing.T) {
		mock.ExpectExec(createSnapshotsSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, db.RunMigrations(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates failure", func(t *testing.T) {
		mock.ExpectExec(createSnapshotsSQL).WillReturnError(errors.New("permission denied"))

		err := db.RunMigrations(context.Background())
		assert.ErrorContains(t, err, "permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDB_HealthCheck(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck(context.Background()))

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectPing()

	db = New(sqlx.NewDb(sqlDB, "sqlmock"), zap.NewNop())
	assert.NoError(t, db.HealthCheck(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
