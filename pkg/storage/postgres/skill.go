package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const (
	getSkillDisplaysSQL = `
		SELECT id, skill_id, name, COALESCE(summary, '')
		FROM skill_display
		ORDER BY name`

	getDisplayDataSQL = `
		SELECT id, skill_id, name, COALESCE(summary, '')
		FROM skill_display
		WHERE id = $1`

	getInstallerSettingsSQL = `
		SELECT dss.account_id, dss.devices, dss.settings_values
		FROM device_skill_setting dss
		JOIN skill s ON s.id = dss.skill_id
		WHERE dss.account_id = $1 AND s.family_name = 'installer'`

	getSkillSettingsSQL = `
		SELECT account_id, devices, settings_values
		FROM device_skill_setting
		WHERE account_id = $1 AND skill_id = $2`

	updateSkillSettingsSQL = `
		UPDATE device_skill_setting
		SET settings_values = $3
		WHERE account_id = $1 AND devices = $2`
)

// SkillStore implements storage.SkillRepository
type SkillStore struct {
	base
}

// NewSkillStore creates a skill repository over the shared connection
func NewSkillStore(db *sql.DB, timeout time.Duration) *SkillStore {
	return &SkillStore{base{db: db, timeout: timeout}}
}

func (s *SkillStore) GetSkillDisplays(ctx context.Context) ([]storage.SkillDisplay, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, getSkillDisplaysSQL)
	if err != nil {
		return nil, apperr.Persistence("skill.get_displays", err)
	}
	defer rows.Close()

	displays := []storage.SkillDisplay{}
	for rows.Next() {
		var display storage.SkillDisplay
		if err := rows.Scan(&display.ID, &display.SkillID, &display.Name, &display.Summary); err != nil {
			return nil, apperr.Persistence("skill.get_displays", err)
		}
		displays = append(displays, display)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("skill.get_displays", err)
	}
	return displays, nil
}

func (s *SkillStore) GetDisplayData(ctx context.Context, skillDisplayID string) (*storage.SkillDisplay, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var display storage.SkillDisplay
	err := s.db.QueryRowContext(ctx, getDisplayDataSQL, skillDisplayID).Scan(
		&display.ID,
		&display.SkillID,
		&display.Name,
		&display.Summary,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("skill display", skillDisplayID)
	}
	if err != nil {
		return nil, apperr.Persistence("skill.get_display", err)
	}
	return &display, nil
}

func (s *SkillStore) GetInstallerSettings(ctx context.Context, accountID string) ([]storage.AccountSkillSetting, error) {
	return s.querySettings(ctx, "skill.get_installer_settings", getInstallerSettingsSQL, accountID)
}

func (s *SkillStore) GetSkillSettings(ctx context.Context, accountID, skillID string) ([]storage.AccountSkillSetting, error) {
	return s.querySettings(ctx, "skill.get_settings", getSkillSettingsSQL, accountID, skillID)
}

func (s *SkillStore) querySettings(ctx context.Context, op, query string, args ...interface{}) ([]storage.AccountSkillSetting, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer rows.Close()

	settings := []storage.AccountSkillSetting{}
	for rows.Next() {
		var (
			setting   storage.AccountSkillSetting
			devices   pq.StringArray
			valuesRaw []byte
		)
		if err := rows.Scan(&setting.AccountID, &devices, &valuesRaw); err != nil {
			return nil, apperr.Persistence(op, err)
		}
		setting.Devices = devices

		values := storage.SettingsValues{}
		if len(valuesRaw) > 0 {
			if err := json.Unmarshal(valuesRaw, &values); err != nil {
				return nil, apperr.Persistence(op, err)
			}
		}
		// Legacy string-encoded sections are migrated here, at read
		// time, so handlers only ever see structured sequences
		values.Normalize()
		setting.SettingsValues = values

		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return settings, nil
}

func (s *SkillStore) UpdateSkillSettings(ctx context.Context, accountID string, devices []string, values storage.SettingsValues) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	valuesRaw, err := json.Marshal(values)
	if err != nil {
		return apperr.Persistence("skill.update_settings", err)
	}

	_, err = s.db.ExecContext(ctx, updateSkillSettingsSQL,
		accountID,
		pq.Array(devices),
		valuesRaw,
	)
	if err != nil {
		return writeErr("skill.update_settings", err)
	}
	return nil
}
