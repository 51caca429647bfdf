package database

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTables(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS posts").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS analytics").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, NewWithPool(mock).CreateTables(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTables_StopsOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS posts").WillReturnError(errors.New("permission denied"))

	err = NewWithPool(mock).CreateTables(context.Background())
	assert.ErrorContains(t, err, "failed to create tables")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	assert.NoError(t, NewWithPool(mock).Health(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
