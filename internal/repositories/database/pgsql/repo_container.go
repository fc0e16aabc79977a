package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(pool),
		ExchangeRateRepo: newPgxExchangeRateRepository(pool),
		AccountRepo:      newPgxAccountRepository(pool),
		LedgerRepo:       newPgxLedgerRepository(pool),
		DocumentTypeRepo: newPgxDocumentTypeRepository(pool),
		DocumentRepo:     newPgxDocumentRepository(pool),
		EntryRepo:        newPgxEntryRepository(pool),
		ReportingRepo:    newPgxReportingRepository(pool),
	}
}
