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
	"github.com/chriscouch/ledgercore/internal/models"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency catalog data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func toModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:  d.CurrencyID,
		Code:        d.Code,
		NumericCode: d.NumericCode,
		MinorUnit:   d.MinorUnit,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:  m.CurrencyID,
		Code:        m.Code,
		NumericCode: m.NumericCode,
		MinorUnit:   m.MinorUnit,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// UpsertCurrency inserts the currency or, on a code conflict, refreshes the
// mutable columns of the existing row. RETURNING gives every caller the
// surviving row, so concurrent creators converge on one id.
func (r *PgxCurrencyRepository) UpsertCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	modelCurr := toModelCurrency(currency)

	query := `
		INSERT INTO currencies (currency_id, code, numeric_code, minor_unit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO UPDATE SET
			numeric_code = EXCLUDED.numeric_code,
			minor_unit = EXCLUDED.minor_unit,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING currency_id, code, numeric_code, minor_unit, created_at, created_by, last_updated_at, last_updated_by;
	`

	var saved models.Currency
	err := r.Pool.QueryRow(ctx, query,
		modelCurr.CurrencyID,
		modelCurr.Code,
		modelCurr.NumericCode,
		modelCurr.MinorUnit,
		modelCurr.CreatedAt,
		modelCurr.CreatedBy,
		modelCurr.LastUpdatedAt,
		modelCurr.LastUpdatedBy,
	).Scan(
		&saved.CurrencyID,
		&saved.Code,
		&saved.NumericCode,
		&saved.MinorUnit,
		&saved.CreatedAt,
		&saved.CreatedBy,
		&saved.LastUpdatedAt,
		&saved.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert currency %s: %w", modelCurr.Code, err)
	}

	domainCurr := toDomainCurrency(saved)
	return &domainCurr, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return r.findCurrency(ctx, "code = $1", code)
}

// FindCurrencyByID retrieves a currency by its id.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	return r.findCurrency(ctx, "currency_id = $1", currencyID)
}

func (r *PgxCurrencyRepository) findCurrency(ctx context.Context, where string, arg any) (*domain.Currency, error) {
	query := `
		SELECT currency_id, code, numeric_code, minor_unit, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		WHERE ` + where + `;
	`
	var modelCurr models.Currency
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&modelCurr.CurrencyID,
		&modelCurr.Code,
		&modelCurr.NumericCode,
		&modelCurr.MinorUnit,
		&modelCurr.CreatedAt,
		&modelCurr.CreatedBy,
		&modelCurr.LastUpdatedAt,
		&modelCurr.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency: %w", err)
	}

	domainCurr := toDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT currency_id, code, numeric_code, minor_unit, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		var currency models.Currency
		err := row.Scan(
			&currency.CurrencyID,
			&currency.Code,
			&currency.NumericCode,
			&currency.MinorUnit,
			&currency.CreatedAt,
			&currency.CreatedBy,
			&currency.LastUpdatedAt,
			&currency.LastUpdatedBy,
		)
		return currency, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	currencies := make([]domain.Currency, len(modelCurrencies))
	for i, m := range modelCurrencies {
		currencies[i] = toDomainCurrency(m)
	}
	return currencies, nil
}
