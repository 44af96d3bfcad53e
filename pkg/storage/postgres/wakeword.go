package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const getWakeWordsSQL = `
	SELECT id, account_id, setting_name, engine
	FROM wake_word
	WHERE account_id = $1
	ORDER BY setting_name`

// WakeWordStore implements storage.WakeWordRepository
type WakeWordStore struct {
	base
}

// NewWakeWordStore creates a wake word repository over the shared connection
func NewWakeWordStore(db *sql.DB, timeout time.Duration) *WakeWordStore {
	return &WakeWordStore{base{db: db, timeout: timeout}}
}

func (s *WakeWordStore) GetWakeWords(ctx context.Context, accountID string) ([]storage.WakeWord, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, getWakeWordsSQL, accountID)
	if err != nil {
		return nil, apperr.Persistence("wake_word.get", err)
	}
	defer rows.Close()

	wakeWords := []storage.WakeWord{}
	for rows.Next() {
		var wakeWord storage.WakeWord
		if err := rows.Scan(
			&wakeWord.ID,
			&wakeWord.AccountID,
			&wakeWord.SettingName,
			&wakeWord.Engine,
		); err != nil {
			return nil, apperr.Persistence("wake_word.get", err)
		}
		wakeWords = append(wakeWords, wakeWord)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("wake_word.get", err)
	}
	return wakeWords, nil
}
