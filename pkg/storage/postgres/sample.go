package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const (
	addSampleSQL = `
		INSERT INTO wake_word_sample (wake_word_id, account_id, audio_file_name, audio_file_date)
		VALUES ($1, $2, $3, CURRENT_DATE)`

	getSamplesByAccountSQL = `
		SELECT wake_word_id, account_id, audio_file_name, audio_file_date, directory_group
		FROM wake_word_sample
		WHERE account_id = $1
		ORDER BY audio_file_date, audio_file_name`
)

// SampleStore implements storage.SampleRepository
type SampleStore struct {
	base
}

// NewSampleStore creates a sample repository over the shared connection
func NewSampleStore(db *sql.DB, timeout time.Duration) *SampleStore {
	return &SampleStore{base{db: db, timeout: timeout}}
}

// Add inserts a sample row. audio_file_date defaults to the insertion date;
// directory_group stays null until the classification batch job assigns it.
func (s *SampleStore) Add(ctx context.Context, sample *storage.WakeWordSample) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, addSampleSQL,
		sample.WakeWordID,
		sample.AccountID,
		sample.AudioFileName,
	)
	if err != nil {
		return writeErr("sample.add", err)
	}
	return nil
}

func (s *SampleStore) RetrieveByAccount(ctx context.Context, accountID string) ([]storage.WakeWordSample, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, getSamplesByAccountSQL, accountID)
	if err != nil {
		return nil, apperr.Persistence("sample.retrieve_by_account", err)
	}
	defer rows.Close()

	samples := []storage.WakeWordSample{}
	for rows.Next() {
		var (
			sample         storage.WakeWordSample
			directoryGroup sql.NullString
		)
		if err := rows.Scan(
			&sample.WakeWordID,
			&sample.AccountID,
			&sample.AudioFileName,
			&sample.AudioFileDate,
			&directoryGroup,
		); err != nil {
			return nil, apperr.Persistence("sample.retrieve_by_account", err)
		}
		if directoryGroup.Valid {
			sample.DirectoryGroup = &directoryGroup.String
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("sample.retrieve_by_account", err)
	}
	return samples, nil
}
