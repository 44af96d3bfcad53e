package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const getActiveAgreementSQL = `
	SELECT id, type, version, content, effective_date
	FROM agreement
	WHERE type = $1 AND effective_date <= CURRENT_DATE
	ORDER BY effective_date DESC
	LIMIT 1`

// AgreementStore implements storage.AgreementRepository
type AgreementStore struct {
	base
}

// NewAgreementStore creates an agreement repository over the shared connection
func NewAgreementStore(db *sql.DB, timeout time.Duration) *AgreementStore {
	return &AgreementStore{base{db: db, timeout: timeout}}
}

func (s *AgreementStore) GetActiveAgreement(ctx context.Context, agreementType string) (*storage.Agreement, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var agreement storage.Agreement
	err := s.db.QueryRowContext(ctx, getActiveAgreementSQL, agreementType).Scan(
		&agreement.ID,
		&agreement.Type,
		&agreement.Version,
		&agreement.Content,
		&agreement.EffectiveDate,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("agreement", agreementType)
	}
	if err != nil {
		return nil, apperr.Persistence("agreement.get_active", err)
	}
	return &agreement, nil
}
