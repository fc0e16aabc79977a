package services

import (
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
)

// NewServiceContainer wires all services for one ledger over the given
// repositories. Each container carries its own memo caches, so build one per
// unit of work rather than sharing it across tenants.
func NewServiceContainer(repos portsrepo.RepositoryProvider, ledger domain.Ledger, ledgerOptions ...LedgerServiceOption) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.CurrencyRepo, repos.ExchangeRateRepo)
	chartSvc := NewChartService(ledger.LedgerID, repos.AccountRepo, currencySvc)
	documentSvc := NewDocumentService(ledger.LedgerID, repos.DocumentTypeRepo, repos.DocumentRepo)
	ledgerSvc := NewLedgerService(ledger, currencySvc, chartSvc, documentSvc, repos.EntryRepo, ledgerOptions...)
	reportingSvc := NewReportingService(ledger.LedgerID, chartSvc, currencySvc, repos.ReportingRepo)

	return &portssvc.ServiceContainer{
		Currency:  currencySvc,
		Chart:     chartSvc,
		Document:  documentSvc,
		Ledger:    ledgerSvc,
		Reporting: reportingSvc,
	}
}
