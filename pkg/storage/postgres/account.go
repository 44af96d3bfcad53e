package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const (
	getAccountSQL = `
		SELECT id, email_address, username, COALESCE(membership, '')
		FROM account
		WHERE id = $1`

	getAccountByDeviceSQL = `
		SELECT a.id, a.email_address, a.username, COALESCE(a.membership, '')
		FROM account a
		JOIN device d ON d.account_id = a.id
		WHERE d.id = $1`

	deleteAccountSQL = `
		DELETE FROM account
		WHERE id = $1`
)

// AccountStore implements storage.AccountRepository
type AccountStore struct {
	base
}

// NewAccountStore creates an account repository over the shared connection
func NewAccountStore(db *sql.DB, timeout time.Duration) *AccountStore {
	return &AccountStore{base{db: db, timeout: timeout}}
}

func (s *AccountStore) GetAccount(ctx context.Context, id string) (*storage.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var account storage.Account
	err := s.db.QueryRowContext(ctx, getAccountSQL, id).Scan(
		&account.ID,
		&account.EmailAddress,
		&account.Username,
		&account.Membership,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("account", id)
	}
	if err != nil {
		return nil, apperr.Persistence("account.get", err)
	}
	return &account, nil
}

func (s *AccountStore) GetAccountByDeviceID(ctx context.Context, deviceID string) (*storage.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var account storage.Account
	err := s.db.QueryRowContext(ctx, getAccountByDeviceSQL, deviceID).Scan(
		&account.ID,
		&account.EmailAddress,
		&account.Username,
		&account.Membership,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("account for device", deviceID)
	}
	if err != nil {
		return nil, apperr.Persistence("account.get_by_device", err)
	}
	return &account, nil
}

func (s *AccountStore) DeleteAccount(ctx context.Context, id string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, deleteAccountSQL, id)
	if err != nil {
		return writeErr("account.delete", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperr.NotFound("account", id)
	}
	return nil
}
