package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	"github.com/chriscouch/ledgercore/internal/models"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for persisted ledger entries.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const insertEntrySQL = `
	INSERT INTO ledger_entries (
		entry_id, document_id, account_id, date,
		debit_amount, credit_amount, currency_id,
		original_amount, original_currency_id,
		party_type, party_id,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, (SELECT currency_id FROM currencies WHERE code = $9), $10, $11, $12, $13, $14, $15);
`

func toModelEntry(e domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:    e.EntryID,
		DocumentID: e.DocumentID,
		AccountID:  e.AccountID,
		Date:       e.Date,
		CurrencyID: e.CurrencyID,
	}
	m.CreatedAt = e.CreatedAt
	m.CreatedBy = e.CreatedBy
	m.LastUpdatedAt = e.LastUpdatedAt
	m.LastUpdatedBy = e.LastUpdatedBy

	value := e.Amount.Value
	if e.Amount.Side == domain.Credit {
		m.CreditAmount = &value
	} else {
		m.DebitAmount = &value
	}
	if e.Amount.Original != nil {
		original := e.Amount.Original.Amount
		originalCode := e.Amount.Original.CurrencyCode
		m.OriginalAmount = &original
		m.OriginalCurrencyID = &originalCode // resolved to an id inside the insert
	}
	if e.Party != nil {
		partyType := e.Party.Type
		partyID := e.Party.ID
		m.PartyType = &partyType
		m.PartyID = &partyID
	}
	return m
}

func queueEntryInsert(batch *pgx.Batch, e domain.LedgerEntry) {
	m := toModelEntry(e)
	batch.Queue(insertEntrySQL,
		m.EntryID,
		m.DocumentID,
		m.AccountID,
		m.Date,
		m.DebitAmount,
		m.CreditAmount,
		m.CurrencyID,
		m.OriginalAmount,
		m.OriginalCurrencyID,
		m.PartyType,
		m.PartyID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

func sendEntryBatch(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	batch := &pgx.Batch{}
	for _, e := range entries {
		queueEntryInsert(batch, e)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert ledger entry: %w", err)
		}
	}
	return results.Close()
}

// SaveEntries persists the entries inside a single database transaction.
func (r *PgxEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := sendEntryBatch(ctx, tx, entries); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceDocumentEntries overwrites the document's stored metadata and swaps
// its entire entry set in one transaction, so readers never observe a partial
// replace.
func (r *PgxEntryRepository) ReplaceDocumentEntries(ctx context.Context, doc domain.Document, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := toModelDocument(doc)
	_, err = tx.Exec(ctx, `
		UPDATE documents
		SET number = $2, party_type = $3, party_id = $4, date = $5, due_date = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE document_id = $1;
	`,
		m.DocumentID,
		m.Number,
		m.PartyType,
		m.PartyID,
		m.Date,
		m.DueDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", doc.DocumentID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM ledger_entries WHERE document_id = $1;`, doc.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to clear entries of document %s: %w", doc.DocumentID, err)
	}

	if len(entries) > 0 {
		if err := sendEntryBatch(ctx, tx, entries); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// FindEntriesByDocumentID retrieves every entry posted for a document,
// joining accounts and currencies so domain entries come back with names and
// codes resolved.
func (r *PgxEntryRepository) FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT e.entry_id, e.document_id, a.name, e.account_id, e.date,
		       e.debit_amount, e.credit_amount, c.code, e.currency_id,
		       e.original_amount, oc.code,
		       e.party_type, e.party_id,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM ledger_entries e
		JOIN accounts a ON a.account_id = e.account_id
		JOIN currencies c ON c.currency_id = e.currency_id
		LEFT JOIN currencies oc ON oc.currency_id = e.original_currency_id
		WHERE e.document_id = $1
		ORDER BY e.created_at, e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries of document %s: %w", documentID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerEntry, error) {
		var (
			e             domain.LedgerEntry
			debitAmount   *decimal.Decimal
			creditAmount  *decimal.Decimal
			originalValue *decimal.Decimal
			originalCode  *string
			partyType     *string
			partyID       *string
		)
		err := row.Scan(
			&e.EntryID,
			&e.DocumentID,
			&e.AccountName,
			&e.AccountID,
			&e.Date,
			&debitAmount,
			&creditAmount,
			&e.CurrencyCode,
			&e.CurrencyID,
			&originalValue,
			&originalCode,
			&partyType,
			&partyID,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return domain.LedgerEntry{}, err
		}
		switch {
		case debitAmount != nil:
			e.Amount = domain.NewDebit(*debitAmount)
		case creditAmount != nil:
			e.Amount = domain.NewCredit(*creditAmount)
		}
		if originalValue != nil && originalCode != nil {
			e.Amount.Original = &domain.Money{Amount: *originalValue, CurrencyCode: *originalCode}
		}
		if partyType != nil && partyID != nil {
			e.Party = &domain.Party{Type: *partyType, ID: *partyID}
		}
		return e, nil
	})
}
