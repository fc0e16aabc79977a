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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		LedgerID:    m.LedgerID,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		CurrencyID:  m.CurrencyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, ledger_id, name, account_type, currency_id, created_at, created_by, last_updated_at, last_updated_by`

// FindOrCreateAccount inserts the account or returns the existing row with
// the same (ledger, name). The no-op DO UPDATE makes RETURNING yield the
// existing row on conflict, so two concurrent creators observe the same id.
func (r *PgxAccountRepository) FindOrCreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (ledger_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING ` + accountColumns + `;
	`

	var saved models.Account
	err := r.Pool.QueryRow(ctx, query,
		account.AccountID,
		account.LedgerID,
		account.Name,
		string(account.AccountType),
		account.CurrencyID,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	).Scan(
		&saved.AccountID,
		&saved.LedgerID,
		&saved.Name,
		&saved.AccountType,
		&saved.CurrencyID,
		&saved.CreatedAt,
		&saved.CreatedBy,
		&saved.LastUpdatedAt,
		&saved.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create account %q: %w", account.Name, err)
	}

	domainAcc := toDomainAccount(saved)
	return &domainAcc, nil
}

// FindAccountByName retrieves an account by its name within a ledger.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, ledgerID, name string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ledger_id = $1 AND name = $2;
	`

	var modelAcc models.Account
	err := r.Pool.QueryRow(ctx, query, ledgerID, name).Scan(
		&modelAcc.AccountID,
		&modelAcc.LedgerID,
		&modelAcc.Name,
		&modelAcc.AccountType,
		&modelAcc.CurrencyID,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %q: %w", name, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// ListAccounts retrieves every account of a ledger ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ledger_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		var acc models.Account
		err := row.Scan(
			&acc.AccountID,
			&acc.LedgerID,
			&acc.Name,
			&acc.AccountType,
			&acc.CurrencyID,
			&acc.CreatedAt,
			&acc.CreatedBy,
			&acc.LastUpdatedAt,
			&acc.LastUpdatedBy,
		)
		return acc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	accounts := make([]domain.Account, len(modelAccounts))
	for i, m := range modelAccounts {
		accounts[i] = toDomainAccount(m)
	}
	return accounts, nil
}
