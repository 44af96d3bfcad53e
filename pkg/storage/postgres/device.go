package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const (
	getDevicesByAccountSQL = `
		SELECT id, account_id, name, platform, COALESCE(core_version, ''), added_at
		FROM device
		WHERE account_id = $1
		ORDER BY added_at`

	getDeviceCountSQL = `
		SELECT COUNT(*)
		FROM device
		WHERE account_id = $1`
)

// DeviceStore implements storage.DeviceRepository
type DeviceStore struct {
	base
}

// NewDeviceStore creates a device repository over the shared connection
func NewDeviceStore(db *sql.DB, timeout time.Duration) *DeviceStore {
	return &DeviceStore{base{db: db, timeout: timeout}}
}

func (s *DeviceStore) GetDevicesByAccount(ctx context.Context, accountID string) ([]storage.Device, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, getDevicesByAccountSQL, accountID)
	if err != nil {
		return nil, apperr.Persistence("device.get_by_account", err)
	}
	defer rows.Close()

	devices := []storage.Device{}
	for rows.Next() {
		var device storage.Device
		if err := rows.Scan(
			&device.ID,
			&device.AccountID,
			&device.Name,
			&device.Platform,
			&device.CoreVersion,
			&device.AddedAt,
		); err != nil {
			return nil, apperr.Persistence("device.get_by_account", err)
		}
		devices = append(devices, device)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("device.get_by_account", err)
	}
	return devices, nil
}

func (s *DeviceStore) GetDeviceCount(ctx context.Context, accountID string) (int, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, getDeviceCountSQL, accountID).Scan(&count); err != nil {
		return 0, apperr.Persistence("device.count", err)
	}
	return count, nil
}
