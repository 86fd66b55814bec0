package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	"github.com/Chrisphine10/intellicash-core/internal/models"
	"github.com/Chrisphine10/intellicash-core/internal/utils/mapping"
	"github.com/Chrisphine10/intellicash-core/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(base BaseRepository) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: base}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `
	entry_id, account_id, member_id, entry_date, amount, currency_code,
	direction, status, entry_type, loan_id, schedule_entry_id, parent_entry_id,
	notes, created_at, created_by, last_updated_at, last_updated_by`

// SaveEntry inserts a ledger entry. Cleared debits go through the in-tx
// balance check under the account lock.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	tx, txCtx, cancel, err := r.BeginBounded(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(txCtx, tx)

	if err := debitWithBalanceCheckTx(txCtx, tx, entry); err != nil {
		return err
	}
	return r.Commit(txCtx, tx)
}

// SaveTransferPair appends both transfer legs atomically. The debit side's
// balance rules apply; the credit leg can never fail the check.
func (r *PgxLedgerRepository) SaveTransferPair(ctx context.Context, debit domain.LedgerEntry, credit domain.LedgerEntry) error {
	tx, txCtx, cancel, err := r.BeginBounded(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(txCtx, tx)

	if err := debitWithBalanceCheckTx(txCtx, tx, debit); err != nil {
		return err
	}
	if err := insertLedgerEntryTx(txCtx, tx, credit); err != nil {
		return mapTxErr(err, "failed to insert credit leg "+credit.EntryID)
	}
	return r.Commit(txCtx, tx)
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

// ClearEntry transitions PENDING -> CLEARED. The owning account row stays
// locked from the balance check through the status flip so a concurrent
// clearing cannot slip a debit past the available balance.
func (r *PgxLedgerRepository) ClearEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	return r.transition(ctx, entryID, actorID, domain.LedgerPending, domain.LedgerCleared, true)
}

// RejectEntry transitions PENDING -> REJECTED with no balance effect.
func (r *PgxLedgerRepository) RejectEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	return r.transition(ctx, entryID, actorID, domain.LedgerPending, domain.LedgerRejected, false)
}

// CancelEntry transitions CLEARED -> CANCELLED, removing the entry's balance
// effect.
func (r *PgxLedgerRepository) CancelEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	return r.transition(ctx, entryID, actorID, domain.LedgerCleared, domain.LedgerCancelled, false)
}

func (r *PgxLedgerRepository) transition(ctx context.Context, entryID, actorID string, from, to domain.LedgerStatus, balanceCheck bool) (*domain.LedgerEntry, error) {
	tx, txCtx, cancel, err := r.BeginBounded(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer r.Rollback(txCtx, tx)

	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE entry_id = $1 FOR UPDATE;`
	m, err := scanLedgerEntry(tx.QueryRow(txCtx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapTxErr(err, "failed to lock ledger entry "+entryID)
	}
	if m.Status != string(from) {
		return nil, fmt.Errorf("%w: ledger entry %s is %s, expected %s", apperrors.ErrConflict, entryID, m.Status, from)
	}

	if balanceCheck && m.Direction == string(domain.Debit) {
		if err := checkDebitAllowedTx(txCtx, tx, m.AccountID, m.Amount); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(txCtx, `
		UPDATE ledger_entries
		SET status = $2, cleared_at = CASE WHEN $2 = 'CLEARED' THEN $3 ELSE cleared_at END,
		    last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`, entryID, string(to), now, actorID); err != nil {
		return nil, mapTxErr(err, "failed to transition ledger entry "+entryID)
	}

	if err := r.Commit(txCtx, tx); err != nil {
		return nil, err
	}

	m.Status = string(to)
	m.LastUpdatedAt = now
	m.LastUpdatedBy = actorID
	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

// SumClearedByAccount returns cleared credits minus cleared debits for an
// account, optionally bounded by an as-of date (inclusive).
func (r *PgxLedgerRepository) SumClearedByAccount(ctx context.Context, accountID string, asOf *time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE account_id = $1 AND status = 'CLEARED' AND ($2::timestamptz IS NULL OR entry_date <= $2);
	`
	var sum int64
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&sum); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum cleared entries for account "+accountID, err)
	}
	return sum, nil
}

// ListClearedByAccountBetween returns cleared entries with dates in (from, to],
// ordered by date then creation time, for the interest accrual walk.
func (r *PgxLedgerRepository) ListClearedByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND status = 'CLEARED' AND entry_date > $2 AND entry_date <= $3
		ORDER BY entry_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cleared entries for account "+accountID, err)
	}
	defer rows.Close()

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan cleared entries for account "+accountID, err)
	}
	return entries, nil
}

// SumClearedByTypesBetween sums cleared entries of the given types with dates
// in [from, to], across all accounts in the currency.
func (r *PgxLedgerRepository) SumClearedByTypesBetween(ctx context.Context, types []domain.LedgerType, currencyCode string, from, to time.Time) (int64, error) {
	typeStrs := make([]string, len(types))
	for i, t := range types {
		typeStrs[i] = string(t)
	}
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE status = 'CLEARED' AND currency_code = $1 AND entry_type = ANY($2)
		  AND entry_date >= $3 AND entry_date <= $4;
	`
	var sum int64
	if err := r.Pool.QueryRow(ctx, query, currencyCode, typeStrs, from, to).Scan(&sum); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum cleared entries by type", err)
	}
	return sum, nil
}

// ListEntriesByAccount returns a page of entries for an account using
// cursor-token pagination, newest first.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := []interface{}{accountID, limit + 1}
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE account_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, err.Error())
		}
		query += ` AND (entry_date, created_at) < ($3, $4)`
		args = append(args, entryDate, createdAt)
	}
	query += `
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for account "+accountID, err)
	}
	defer rows.Close()

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entries for account "+accountID, err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// insertLedgerEntryTx inserts one ledger entry inside a transaction.
func insertLedgerEntryTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	var clearedAt *time.Time
	if m.Status == string(domain.LedgerCleared) {
		clearedAt = &m.CreatedAt
	}
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `, cleared_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID, m.AccountID, m.MemberID, m.EntryDate, m.Amount, m.CurrencyCode,
		m.Direction, m.Status, m.EntryType, m.LoanID, m.ScheduleEntryID, m.ParentEntryID,
		m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, clearedAt,
	)
	return err
}

// debitWithBalanceCheckTx inserts an entry, first running the balance check
// under the account lock when the entry is a cleared debit.
func debitWithBalanceCheckTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	if entry.Direction == domain.Debit && entry.Status == domain.LedgerCleared {
		if err := checkDebitAllowedTx(ctx, tx, entry.AccountID, entry.Amount.Amount); err != nil {
			return err
		}
	}
	if err := insertLedgerEntryTx(ctx, tx, entry); err != nil {
		return mapTxErr(err, "failed to insert ledger entry "+entry.EntryID)
	}
	return nil
}

// checkDebitAllowedTx locks the account row, recomputes its available balance
// (cleared credits - cleared debits - active holds) and verifies the debit
// fits within the account's minimum-balance and negative-balance rules.
func checkDebitAllowedTx(ctx context.Context, tx pgx.Tx, accountID string, amount int64) error {
	var minBalance int64
	var allowNegative bool
	err := tx.QueryRow(ctx, `
		SELECT minimum_balance_amount, allow_negative
		FROM savings_accounts WHERE account_id = $1 FOR UPDATE;
	`, accountID).Scan(&minBalance, &allowNegative)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return mapTxErr(err, "failed to lock account "+accountID)
	}
	if allowNegative {
		return nil
	}

	var cleared, held int64
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN direction = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries WHERE account_id = $1 AND status = 'CLEARED';
	`, accountID).Scan(&cleared); err != nil {
		return mapTxErr(err, "failed to sum cleared entries for account "+accountID)
	}
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM guarantor_holds WHERE account_id = $1 AND status = 'ACTIVE';
	`, accountID).Scan(&held); err != nil {
		return mapTxErr(err, "failed to sum active holds for account "+accountID)
	}

	floor := cleared - held - amount
	switch {
	case floor < 0:
		return fmt.Errorf("%w: account %s available %d, debit %d", apperrors.ErrInsufficientFunds, accountID, cleared-held, amount)
	case floor < minBalance:
		return fmt.Errorf("%w: account %s would drop to %d below minimum %d", apperrors.ErrBelowMinimumBalance, accountID, floor, minBalance)
	}
	return nil
}

// scanLedgerEntry scans one ledger row, handling nullable linkage columns.
func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	var loanID, scheduleEntryID, parentEntryID, notes sql.NullString
	err := row.Scan(
		&m.EntryID, &m.AccountID, &m.MemberID, &m.EntryDate, &m.Amount, &m.CurrencyCode,
		&m.Direction, &m.Status, &m.EntryType, &loanID, &scheduleEntryID, &parentEntryID,
		&notes, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if loanID.Valid {
		m.LoanID = &loanID.String
	}
	if scheduleEntryID.Valid {
		m.ScheduleEntryID = &scheduleEntryID.String
	}
	if parentEntryID.Valid {
		m.ParentEntryID = &parentEntryID.String
	}
	if notes.Valid {
		m.Notes = notes.String
	}
	return &m, nil
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(*m))
	}
	return entries, rows.Err()
}
