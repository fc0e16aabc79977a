package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/middleware"
)

// reportingService derives balances from persisted entries at query time.
// Balances use the raw signed convention, net = sum(debits) - sum(credits),
// with no per-account-type flip: an asset account reads positive after a
// debit-heavy posting while the matching revenue account reads negative.
// Downstream consumers depend on this, so it is not "corrected".
type reportingService struct {
	ledgerID      string
	chartSvc      portssvc.ChartSvcFacade
	currencySvc   portssvc.CurrencyReaderSvc
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a ReportingService scoped to one ledger.
func NewReportingService(ledgerID string, chartSvc portssvc.ChartSvcFacade, currencySvc portssvc.CurrencyReaderSvc, reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		ledgerID:      ledgerID,
		chartSvc:      chartSvc,
		currencySvc:   currencySvc,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// GetAccountBalance aggregates every entry for the account dated on or before
// asOf (all entries when asOf is nil), in the account's own currency.
func (s *reportingService) GetAccountBalance(ctx context.Context, accountName string, asOf *time.Time) (*domain.Money, error) {
	accountID, err := s.chartSvc.GetAccountID(ctx, accountName)
	if err != nil {
		return nil, err
	}
	currencyID, err := s.chartSvc.GetAccountCurrencyID(ctx, accountName)
	if err != nil {
		return nil, err
	}
	code, err := s.currencySvc.GetISO(ctx, currencyID)
	if err != nil {
		return nil, err
	}

	net, err := s.reportingRepo.GetAccountNet(ctx, accountID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance for account %q: %w", accountName, err)
	}

	return &domain.Money{Amount: net, CurrencyCode: code}, nil
}

// GetAccountBalances computes the balance of every account in the chart with
// no date filter, sorted by account name ascending. Accounts without entries
// report a zero balance.
func (s *reportingService) GetAccountBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.chartSvc.GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	nets, err := s.reportingRepo.GetLedgerNets(ctx, s.ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ledger balances: %w", err)
	}

	balances := make([]domain.AccountBalance, 0, len(accounts))
	for name, account := range accounts {
		code, err := s.currencySvc.GetISO(ctx, account.CurrencyID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, domain.AccountBalance{
			AccountID: account.AccountID,
			Name:      name,
			Balance:   domain.Money{Amount: nets[account.AccountID], CurrencyCode: code},
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Name < balances[j].Name
	})

	logger.Debug("Account balances computed", slog.Int("account_count", len(balances)))
	return balances, nil
}
