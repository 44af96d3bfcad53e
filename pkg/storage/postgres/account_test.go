package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariahq/aria/pkg/apperr"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestGetAccount(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewAccountStore(db, time.Second)

	rows := sqlmock.NewRows([]string{"id", "email_address", "username", "membership"}).
		AddRow("acct-1", "user@example.com", "user", "monthly")
	mock.ExpectQuery("SELECT id, email_address, username").
		WithArgs("acct-1").
		WillReturnRows(rows)

	account, err := store.GetAccount(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", account.ID)
	assert.Equal(t, "user@example.com", account.EmailAddress)
	assert.Equal(t, "monthly", account.Membership)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAccountNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewAccountStore(db, time.Second)

	mock.ExpectQuery("SELECT id, email_address, username").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetAccount(context.Background(), "missing")

	var notFound *apperr.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "account", notFound.Resource)
}

func TestGetAccountByDeviceID(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewAccountStore(db, time.Second)

	rows := sqlmock.NewRows([]string{"id", "email_address", "username", "membership"}).
		AddRow("acct-1", "user@example.com", "user", "")
	mock.ExpectQuery("JOIN device d ON d.account_id = a.id").
		WithArgs("device-1").
		WillReturnRows(rows)

	account, err := store.GetAccountByDeviceID(context.Background(), "device-1")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", account.ID)
}

func TestGetAccountByDeviceIDUnknownDevice(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewAccountStore(db, time.Second)

	mock.ExpectQuery("JOIN device d ON d.account_id = a.id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetAccountByDeviceID(context.Background(), "ghost")

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestGetAccountPersistenceError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewAccountStore(db, time.Second)

	mock.ExpectQuery("SELECT id, email_address, username").
		WithArgs("acct-1").
		WillReturnError(errors.New("connection reset"))

	_, err := store.GetAccount(context.Background(), "acct-1")

	var persist *apperr.PersistenceError
	require.True(t, errors.As(err, &persist))
	assert.Equal(t, "account.get", persist.Op)
}

func TestDeleteAccount(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewAccountStore(db, time.Second)

	mock.ExpectExec("DELETE FROM account").
		WithArgs("acct-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.DeleteAccount(context.Background(), "acct-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccountMissing(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewAccountStore(db, time.Second)

	mock.ExpectExec("DELETE FROM account").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteAccount(context.Background(), "missing")

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
