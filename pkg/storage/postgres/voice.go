package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const getVoicesSQL = `
	SELECT id, setting_name, display_name, engine
	FROM text_to_speech
	ORDER BY display_name`

// VoiceStore implements storage.VoiceRepository
type VoiceStore struct {
	base
}

// NewVoiceStore creates a voice repository over the shared connection
func NewVoiceStore(db *sql.DB, timeout time.Duration) *VoiceStore {
	return &VoiceStore{base{db: db, timeout: timeout}}
}

func (s *VoiceStore) GetVoices(ctx context.Context) ([]storage.Voice, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, getVoicesSQL)
	if err != nil {
		return nil, apperr.Persistence("voice.get_all", err)
	}
	defer rows.Close()

	voices := []storage.Voice{}
	for rows.Next() {
		var voice storage.Voice
		if err := rows.Scan(&voice.ID, &voice.SettingName, &voice.DisplayName, &voice.Engine); err != nil {
			return nil, apperr.Persistence("voice.get_all", err)
		}
		voices = append(voices, voice)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("voice.get_all", err)
	}
	return voices, nil
}
