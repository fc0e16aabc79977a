package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	"github.com/chriscouch/ledgercore/internal/models"
)

// PgxExchangeRateRepository persists historical exchange rates. A recorded
// (base, target, date) tuple is immutable.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new exchange-rate repository.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func toDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		BaseCurrencyID:   m.BaseCurrencyID,
		TargetCurrencyID: m.TargetCurrencyID,
		Rate:             m.Rate,
		RateDate:         m.RateDate,
		Source:           m.Source,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const exchangeRateColumns = `exchange_rate_id, base_currency_id, target_currency_id, rate, rate_date, source, created_at, created_by, last_updated_at, last_updated_by`

// FindRate retrieves the persisted rate for (base, target, date).
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, baseCurrencyID, targetCurrencyID string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency_id = $1 AND target_currency_id = $2 AND rate_date = $3;
	`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, baseCurrencyID, targetCurrencyID, date).Scan(
		&modelRate.ExchangeRateID, &modelRate.BaseCurrencyID, &modelRate.TargetCurrencyID,
		&modelRate.Rate, &modelRate.RateDate, &modelRate.Source,
		&modelRate.CreatedAt, &modelRate.CreatedBy, &modelRate.LastUpdatedAt, &modelRate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate: %w", err)
	}

	domainRate := toDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// InsertRateIfAbsent persists the rate unless a row for the same tuple already
// exists. The insert never updates on conflict, so historical rates stay
// immutable; the surviving row is read back and returned either way.
func (r *PgxExchangeRateRepository) InsertRateIfAbsent(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (base_currency_id, target_currency_id, rate_date) DO NOTHING;
	`

	_, err := r.Pool.Exec(ctx, query,
		rate.ExchangeRateID,
		rate.BaseCurrencyID,
		rate.TargetCurrencyID,
		rate.Rate,
		rate.RateDate,
		rate.Source,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert exchange rate: %w", err)
	}

	return r.FindRate(ctx, rate.BaseCurrencyID, rate.TargetCurrencyID, rate.RateDate)
}
