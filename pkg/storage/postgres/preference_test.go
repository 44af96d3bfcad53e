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
	"github.com/ariahq/aria/pkg/storage"
)

func TestGetPreferences(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPreferenceStore(db, time.Second)

	rows := sqlmock.NewRows([]string{"account_id", "date_format", "time_format", "measurement_system"}).
		AddRow("acct-1", "MM/DD/YYYY", "12 Hour", "Imperial")
	mock.ExpectQuery("FROM account_preferences").
		WithArgs("acct-1").
		WillReturnRows(rows)

	prefs, err := store.GetPreferences(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "12 Hour", prefs.TimeFormat)
}

func TestGetPreferencesNotSavedYet(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPreferenceStore(db, time.Second)

	mock.ExpectQuery("FROM account_preferences").
		WithArgs("acct-1").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetPreferences(context.Background(), "acct-1")

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestUpsertPreferences(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPreferenceStore(db, time.Second)

	mock.ExpectExec("INSERT INTO account_preferences").
		WithArgs("acct-1", "DD/MM/YYYY", "24 Hour", "Metric").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpsertPreferences(context.Background(), &storage.AccountPreferences{
		AccountID:         "acct-1",
		DateFormat:        "DD/MM/YYYY",
		TimeFormat:        "24 Hour",
		MeasurementSystem: "Metric",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
