package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const (
	getPreferencesSQL = `
		SELECT account_id, date_format, time_format, measurement_system
		FROM account_preferences
		WHERE account_id = $1`

	upsertPreferencesSQL = `
		INSERT INTO account_preferences (account_id, date_format, time_format, measurement_system)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id)
		DO UPDATE SET date_format = $2, time_format = $3, measurement_system = $4`
)

// PreferenceStore implements storage.PreferenceRepository
type PreferenceStore struct {
	base
}

// NewPreferenceStore creates a preference repository over the shared connection
func NewPreferenceStore(db *sql.DB, timeout time.Duration) *PreferenceStore {
	return &PreferenceStore{base{db: db, timeout: timeout}}
}

func (s *PreferenceStore) GetPreferences(ctx context.Context, accountID string) (*storage.AccountPreferences, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var prefs storage.AccountPreferences
	err := s.db.QueryRowContext(ctx, getPreferencesSQL, accountID).Scan(
		&prefs.AccountID,
		&prefs.DateFormat,
		&prefs.TimeFormat,
		&prefs.MeasurementSystem,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("preferences", accountID)
	}
	if err != nil {
		return nil, apperr.Persistence("preferences.get", err)
	}
	return &prefs, nil
}

func (s *PreferenceStore) UpsertPreferences(ctx context.Context, prefs *storage.AccountPreferences) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, upsertPreferencesSQL,
		prefs.AccountID,
		prefs.DateFormat,
		prefs.TimeFormat,
		prefs.MeasurementSystem,
	)
	if err != nil {
		return writeErr("preferences.upsert", err)
	}
	return nil
}
