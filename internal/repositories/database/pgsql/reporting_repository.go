package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for balance aggregation.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountNet sums debits minus credits for the account. The asOf bound is
// inclusive: entries dated exactly at asOf count.
func (r *PgxReportingRepository) GetAccountNet(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(COALESCE(debit_amount, 0) - COALESCE(credit_amount, 0)), 0)
		FROM ledger_entries
		WHERE account_id = $1
	`
	args := []any{accountID}
	if asOf != nil {
		query += ` AND date <= $2`
		args = append(args, *asOf)
	}
	query += `;`

	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute net for account %s: %w", accountID, err)
	}
	return net, nil
}

// GetLedgerNets computes debits minus credits for every account of the
// ledger. The LEFT JOIN keeps accounts without entries in the result at zero.
func (r *PgxReportingRepository) GetLedgerNets(ctx context.Context, ledgerID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT a.account_id,
		       COALESCE(SUM(COALESCE(e.debit_amount, 0) - COALESCE(e.credit_amount, 0)), 0)
		FROM accounts a
		LEFT JOIN ledger_entries e ON e.account_id = a.account_id
		WHERE a.ledger_id = $1
		GROUP BY a.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ledger nets: %w", err)
	}
	defer rows.Close()

	nets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			accountID string
			net       decimal.Decimal
		)
		if err := rows.Scan(&accountID, &net); err != nil {
			return nil, fmt.Errorf("failed to scan ledger net: %w", err)
		}
		nets[accountID] = net
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger nets: %w", err)
	}
	return nets, nil
}
