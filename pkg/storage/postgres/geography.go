package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/storage"
)

const getAccountGeographiesSQL = `
	SELECT id, country, region, city, timezone
	FROM geography
	WHERE account_id = $1
	ORDER BY country, city`

// GeographyStore implements storage.GeographyRepository
type GeographyStore struct {
	base
}

// NewGeographyStore creates a geography repository over the shared connection
func NewGeographyStore(db *sql.DB, timeout time.Duration) *GeographyStore {
	return &GeographyStore{base{db: db, timeout: timeout}}
}

func (s *GeographyStore) GetAccountGeographies(ctx context.Context, accountID string) ([]storage.Geography, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, getAccountGeographiesSQL, accountID)
	if err != nil {
		return nil, apperr.Persistence("geography.get_by_account", err)
	}
	defer rows.Close()

	geographies := []storage.Geography{}
	for rows.Next() {
		var geography storage.Geography
		if err := rows.Scan(
			&geography.ID,
			&geography.Country,
			&geography.Region,
			&geography.City,
			&geography.Timezone,
		); err != nil {
			return nil, apperr.Persistence("geography.get_by_account", err)
		}
		geographies = append(geographies, geography)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("geography.get_by_account", err)
	}
	return geographies, nil
}
