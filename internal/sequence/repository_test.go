package sequence

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestNextOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO order_sequence`).
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(int64(7)))
	mock.ExpectCommit()

	id, err := repo.NextOrderID(context.Background())
	require.NoError(t, err)
	require.Equal(t, "OD000007", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNextOrderID_IncrementError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO order_sequence`).
		WithArgs("orders").
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err = repo.NextOrderID(context.Background())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncWithOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow("OD000001").
		AddRow("legacy-id").
		AddRow("OD000009").
		AddRow("OD000002")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM orders`)).WillReturnRows(rows)
	mock.ExpectExec(`INSERT INTO order_sequence`).
		WithArgs("orders", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SyncWithOrders(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncWithOrders_NothingToSync(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM orders`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	require.NoError(t, repo.SyncWithOrders(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
