package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/middleware"
)

// MapRoundingPolicy designates rounding-difference accounts per currency code.
type MapRoundingPolicy map[string]string

func (p MapRoundingPolicy) RoundingAccount(currencyCode string) (string, bool) {
	name, ok := p[currencyCode]
	return name, ok
}

// ledgerService validates and posts transactions, voids documents, reconciles
// a document's full transaction set and performs currency conversion. It is
// scoped to one ledger (one book of accounts, one base currency).
type ledgerService struct {
	ledgerID         string
	baseCurrencyCode string

	currencySvc portssvc.CurrencySvcFacade
	chartSvc    portssvc.ChartSvcFacade
	documentSvc portssvc.DocumentSvcFacade
	entryRepo   portsrepo.EntryRepositoryFacade

	rounding portssvc.RoundingPolicy
}

// LedgerServiceOption is a functional option for configuring the ledger service.
type LedgerServiceOption func(*ledgerService)

// WithRoundingPolicy enables residual absorption during SyncDocument. Without
// a policy, unbalanced transactions are always rejected.
func WithRoundingPolicy(policy portssvc.RoundingPolicy) LedgerServiceOption {
	return func(s *ledgerService) {
		s.rounding = policy
	}
}

// NewLedgerService creates the orchestrator for one ledger.
func NewLedgerService(ledger domain.Ledger, currencySvc portssvc.CurrencySvcFacade, chartSvc portssvc.ChartSvcFacade, documentSvc portssvc.DocumentSvcFacade, entryRepo portsrepo.EntryRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerID:         ledger.LedgerID,
		baseCurrencyCode: ledger.BaseCurrencyCode,
		currencySvc:      currencySvc,
		chartSvc:         chartSvc,
		documentSvc:      documentSvc,
		entryRepo:        entryRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateTransaction validates the per-currency balance invariant, resolves
// every account name, and persists one row per entry linked to the document,
// all inside a single atomic unit. No running balance is maintained.
func (s *ledgerService) CreateTransaction(ctx context.Context, documentID string, txn domain.Transaction, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkBalancePerCurrency(txn); err != nil {
		return err
	}

	entries, err := s.resolveEntries(ctx, documentID, txn, userID)
	if err != nil {
		return err
	}

	if err := s.entryRepo.SaveEntries(ctx, entries); err != nil {
		logger.Error("Failed to persist ledger entries", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to persist entries for document %s: %w", documentID, err)
	}

	logger.Info("Transaction posted", slog.String("document_id", documentID), slog.Int("entry_count", len(entries)))
	return nil
}

// VoidDocument reverses the document's entire posted footprint: every entry's
// side is flipped with identical account, currency and party, dated at void
// time, and posted through the same balance-checked path. The mirror of a
// balanced set is balanced, so this cannot raise an unbalanced error itself.
// The reversal lands on a new document of the dedicated void type whose
// reference is the original document id, preserving both postings.
func (s *ledgerService) VoidDocument(ctx context.Context, typeName, reference, userID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	documentID, err := s.documentSvc.GetDocumentID(ctx, typeName, reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("Void of unposted document is a no-op", slog.String("type", typeName), slog.String("reference", reference))
			return "", nil
		}
		return "", err
	}

	entries, err := s.entryRepo.FindEntriesByDocumentID(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("failed to load entries for document %s: %w", documentID, err)
	}
	if len(entries) == 0 {
		return "", nil
	}

	now := time.Now().UTC()
	mirror := domain.Transaction{
		Date:         now,
		CurrencyCode: s.baseCurrencyCode,
		Entries:      make([]domain.LedgerEntry, len(entries)),
	}
	for i, entry := range entries {
		reversed := entry.Reversed()
		reversed.Date = now
		mirror.Entries[i] = reversed
	}

	voidDocID, err := s.documentSvc.GetOrCreateDocument(ctx, domain.DocumentInput{
		Type:      domain.VoidDocumentType,
		Reference: documentID,
		Date:      now,
	}, userID)
	if err != nil {
		return "", fmt.Errorf("failed to register void document for %s: %w", documentID, err)
	}

	// A void document that already carries entries means the reversal was
	// posted before; posting it again would over-reverse every account.
	posted, err := s.entryRepo.FindEntriesByDocumentID(ctx, voidDocID)
	if err != nil {
		return "", fmt.Errorf("failed to load entries for void document %s: %w", voidDocID, err)
	}
	if len(posted) > 0 {
		logger.Debug("Document already voided", slog.String("document_id", documentID), slog.String("void_document_id", voidDocID))
		return voidDocID, nil
	}

	if err := s.CreateTransaction(ctx, voidDocID, mirror, userID); err != nil {
		return "", fmt.Errorf("failed to post reversal for document %s: %w", documentID, err)
	}

	logger.Info("Document voided", slog.String("document_id", documentID), slog.String("void_document_id", voidDocID))
	return voidDocID, nil
}

// SyncDocument reconciles the document's ledger footprint with the complete
// desired transaction list. The previously recorded entry set is replaced
// wholesale, which makes the operation idempotent per document: replaying an
// unchanged list leaves net balances unchanged, and a changed list leaves
// exactly its own effect with no residue from earlier calls.
func (s *ledgerService) SyncDocument(ctx context.Context, input domain.DocumentInput, txns []domain.Transaction, userID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	typeID, err := s.documentSvc.GetDocumentTypeID(ctx, input.Type)
	if err != nil {
		return "", err
	}

	documentID, err := s.documentSvc.GetOrCreateDocument(ctx, input, userID)
	if err != nil {
		return "", err
	}

	// Validate every transaction before anything is written. Residuals are
	// absorbed into the designated rounding-difference account when a policy
	// provides one for the currency; otherwise the whole batch is rejected.
	balanced := make([]domain.Transaction, len(txns))
	for i, txn := range txns {
		adjusted, err := s.absorbResidual(txn)
		if err != nil {
			return "", err
		}
		balanced[i] = adjusted
	}

	var entries []domain.LedgerEntry
	for _, txn := range balanced {
		resolved, err := s.resolveEntries(ctx, documentID, txn, userID)
		if err != nil {
			return "", err
		}
		entries = append(entries, resolved...)
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID:     documentID,
		LedgerID:       s.ledgerID,
		DocumentTypeID: typeID,
		Reference:      input.Reference,
		Number:         input.Number,
		Party:          input.Party,
		Date:           input.Date,
		DueDate:        input.DueDate,
		AuditFields: domain.AuditFields{
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Metadata overwrite, delete of the old entry set and insert of the new
	// one commit as one unit; a failure leaves the prior state untouched.
	if err := s.entryRepo.ReplaceDocumentEntries(ctx, doc, entries); err != nil {
		logger.Error("Failed to replace document entries", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to sync document %s: %w", documentID, err)
	}

	logger.Info("Document synced", slog.String("document_id", documentID), slog.Int("entry_count", len(entries)))
	return documentID, nil
}

// ConvertCurrency converts an amount from the ledger's base currency into the
// target currency at the historical rate for the date, rounded to the target
// currency's minor unit. The base currency itself converts to the unchanged
// amount without any lookup.
func (s *ledgerService) ConvertCurrency(ctx context.Context, provider portssvc.RateProvider, targetCurrency string, date time.Time, amountInBase decimal.Decimal) (decimal.Decimal, error) {
	if targetCurrency == s.baseCurrencyCode {
		return amountInBase, nil
	}

	pair := domain.CurrencyPair{Base: s.baseCurrencyCode, Quote: targetCurrency}
	rate, err := s.currencySvc.GetExchangeRate(ctx, provider, pair, date)
	if err != nil {
		return decimal.Zero, err
	}

	target, err := s.currencySvc.GetCurrencyByCode(ctx, targetCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	return amountInBase.Mul(rate).Round(target.MinorUnit), nil
}

// checkBalancePerCurrency enforces invariant 1: within the transaction, for
// every currency present, debits must equal credits exactly.
func checkBalancePerCurrency(txn domain.Transaction) error {
	diffs := txn.CurrencyDiffs()
	for _, code := range sortedCurrencies(diffs) {
		if diff := diffs[code]; !diff.IsZero() {
			return &apperrors.UnbalancedEntryError{CurrencyCode: code, Diff: diff, InCurrency: true}
		}
	}
	return nil
}

// absorbResidual returns the transaction with any per-currency residual
// posted to the rounding-difference account, or an UnbalancedEntryError when
// no rounding account is designated for the offending currency.
func (s *ledgerService) absorbResidual(txn domain.Transaction) (domain.Transaction, error) {
	diffs := txn.CurrencyDiffs()
	for _, code := range sortedCurrencies(diffs) {
		diff := diffs[code]
		if diff.IsZero() {
			continue
		}

		var roundingAccount string
		var ok bool
		if s.rounding != nil {
			roundingAccount, ok = s.rounding.RoundingAccount(code)
		}
		if !ok {
			return domain.Transaction{}, &apperrors.UnbalancedEntryError{CurrencyCode: code, Diff: diff}
		}

		// Debits exceeding credits are absorbed by a credit, and vice versa.
		amount := domain.NewCredit(diff)
		if diff.IsNegative() {
			amount = domain.NewDebit(diff.Neg())
		}
		txn.Entries = append(txn.Entries, domain.LedgerEntry{
			AccountName:  roundingAccount,
			Amount:       amount,
			CurrencyCode: code,
			Date:         txn.Date,
		})
	}
	return txn, nil
}

// resolveEntries turns input entries into persistable rows: account names and
// currency codes become ids, dates default to the transaction date, and every
// row is linked to the document. Unknown accounts fail; they are never
// auto-created here.
func (s *ledgerService) resolveEntries(ctx context.Context, documentID string, txn domain.Transaction, userID string) ([]domain.LedgerEntry, error) {
	now := time.Now().UTC()
	resolved := make([]domain.LedgerEntry, len(txn.Entries))
	for i, entry := range txn.Entries {
		accountID, err := s.chartSvc.GetAccountID(ctx, entry.AccountName)
		if err != nil {
			return nil, err
		}

		code := txn.EntryCurrency(entry)
		currencyID, err := s.currencySvc.GetCurrencyID(ctx, code)
		if err != nil {
			return nil, err
		}

		entry.EntryID = uuid.NewString()
		entry.DocumentID = documentID
		entry.AccountID = accountID
		entry.CurrencyCode = code
		entry.CurrencyID = currencyID
		if entry.Date.IsZero() {
			entry.Date = txn.Date
		}
		entry.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		resolved[i] = entry
	}
	return resolved, nil
}

func sortedCurrencies(diffs map[string]decimal.Decimal) []string {
	codes := make([]string, 0, len(diffs))
	for code := range diffs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
