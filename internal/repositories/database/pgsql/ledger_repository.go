package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the ledgers catalog.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// ledgerSelect joins currencies so callers get the base currency code back
// instead of the stored foreign key.
const ledgerSelect = `
	SELECT l.ledger_id, l.name, c.code, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
	FROM ledgers l
	JOIN currencies c ON c.currency_id = l.base_currency_id
`

func scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var ledger domain.Ledger
	err := row.Scan(
		&ledger.LedgerID,
		&ledger.Name,
		&ledger.BaseCurrencyCode,
		&ledger.CreatedAt,
		&ledger.CreatedBy,
		&ledger.LastUpdatedAt,
		&ledger.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

// FindLedgerByName retrieves a ledger by its unique name.
func (r *PgxLedgerRepository) FindLedgerByName(ctx context.Context, name string) (*domain.Ledger, error) {
	ledger, err := scanLedger(r.Pool.QueryRow(ctx, ledgerSelect+`WHERE l.name = $1;`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger %q: %w", name, err)
	}
	return ledger, nil
}

// FindOrCreateLedger inserts the ledger or returns the existing row with the
// same name. The no-op DO UPDATE makes RETURNING yield a row either way.
func (r *PgxLedgerRepository) FindOrCreateLedger(ctx context.Context, ledger domain.Ledger) (*domain.Ledger, error) {
	query := `
		WITH upserted AS (
			INSERT INTO ledgers (ledger_id, name, base_currency_id, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, (SELECT currency_id FROM currencies WHERE code = $3), $4, $5, $6, $7)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING ledger_id, name, base_currency_id, created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT u.ledger_id, u.name, c.code, u.created_at, u.created_by, u.last_updated_at, u.last_updated_by
		FROM upserted u
		JOIN currencies c ON c.currency_id = u.base_currency_id;
	`

	saved, err := scanLedger(r.Pool.QueryRow(ctx, query,
		ledger.LedgerID,
		ledger.Name,
		ledger.BaseCurrencyCode,
		ledger.CreatedAt,
		ledger.CreatedBy,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to find or create ledger %q: %w", ledger.Name, err)
	}
	return saved, nil
}
