package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	"github.com/Chrisphine10/intellicash-core/internal/models"
	"github.com/Chrisphine10/intellicash-core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan, schedule and
// payment-application data.
func newPgxLoanRepository(base BaseRepository) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository: base}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `
	loan_id, borrower_id, principal_amount, currency_code, interest_rate,
	interest_method, term_count, term_period, penalty_rate, disbursement_date,
	status, total_paid_amount, created_at, created_by, last_updated_at, last_updated_by`

// SaveLoan upserts a loan row.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (loan_id) DO UPDATE SET
			status = EXCLUDED.status,
			disbursement_date = EXCLUDED.disbursement_date,
			total_paid_amount = EXCLUDED.total_paid_amount,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID, m.BorrowerID, m.PrincipalAmount, m.CurrencyCode, m.InterestRate,
		m.InterestMethod, m.TermCount, m.TermPeriod, m.PenaltyRate, m.DisbursementDate,
		m.Status, m.TotalPaidAmount, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save loan "+m.LoanID, err)
	}
	return nil
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find loan by ID "+loanID, err)
	}
	loan := mapping.ToDomainLoan(*m)
	return &loan, nil
}

// DisburseLoan activates a pending loan, inserts its schedule and appends the
// disbursement credit within one DB transaction.
func (r *PgxLoanRepository) DisburseLoan(ctx context.Context, loan domain.Loan, entries []domain.ScheduleEntry, disbursement domain.LedgerEntry) error {
	tx, txCtx, cancel, err := r.BeginBounded(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(txCtx, tx)

	m := mapping.ToModelLoan(loan)
	// Conditional on PENDING so two concurrent disbursements cannot both win.
	tag, err := tx.Exec(txCtx, `
		UPDATE loans
		SET status = $2, disbursement_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $1 AND status = 'PENDING';
	`, m.LoanID, m.Status, m.DisbursementDate, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapTxErr(err, "failed to activate loan "+m.LoanID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s is not pending", apperrors.ErrConflict, m.LoanID)
	}

	if err := insertScheduleEntriesTx(txCtx, tx, entries); err != nil {
		return mapTxErr(err, "failed to insert schedule for loan "+m.LoanID)
	}
	if err := insertLedgerEntryTx(txCtx, tx, disbursement); err != nil {
		return mapTxErr(err, "failed to insert disbursement entry for loan "+m.LoanID)
	}

	return r.Commit(txCtx, tx)
}

// SavePaymentResult commits one accepted payment atomically. The loan row is
// locked first so concurrent payments against the same loan serialize; the
// entry transition is conditional on PENDING so the loser of a race surfaces
// ErrAlreadyPaid instead of double-applying. The loan's total_paid_amount and
// FULLY_PAID decision are recomputed from the schedule inside the transaction.
func (r *PgxLoanRepository) SavePaymentResult(ctx context.Context, app domain.PaymentApplication) error {
	tx, txCtx, cancel, err := r.BeginBounded(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(txCtx, tx)

	loanID := app.Loan.LoanID
	if err := lockLoanTx(txCtx, tx, loanID); err != nil {
		return err
	}

	paid := mapping.ToModelScheduleEntry(app.PaidEntry)
	tag, err := tx.Exec(txCtx, `
		UPDATE schedule_entries
		SET principal_due_amount = $2, interest_due_amount = $3, penalty_due_amount = $4,
		    amount_to_pay = $5, running_balance_amount = $6, status = $7, paid_date = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE entry_id = $1 AND status = 'PENDING';
	`, paid.EntryID, paid.PrincipalDueAmount, paid.InterestDueAmount, paid.PenaltyDueAmount,
		paid.AmountToPay, paid.RunningBalanceAmount, paid.Status, paid.PaidDate,
		paid.LastUpdatedAt, paid.LastUpdatedBy)
	if err != nil {
		return mapTxErr(err, "failed to mark schedule entry paid "+paid.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPaid, paid.EntryID)
	}

	if app.ReplaceTailAfter {
		if _, err := tx.Exec(txCtx, `
			DELETE FROM schedule_entries
			WHERE loan_id = $1 AND status = 'PENDING' AND sequence > $2;
		`, loanID, paid.Sequence); err != nil {
			return mapTxErr(err, "failed to discard schedule tail for loan "+loanID)
		}
		if err := insertScheduleEntriesTx(txCtx, tx, app.RegeneratedTail); err != nil {
			return mapTxErr(err, "failed to insert regenerated tail for loan "+loanID)
		}
	}

	if app.LedgerEntry != nil {
		if err := debitWithBalanceCheckTx(txCtx, tx, *app.LedgerEntry); err != nil {
			return err
		}
	}

	// The loan's totals and terminal status come from the schedule as it
	// stands inside this transaction, not from the caller's pre-lock read.
	// Two payments whose reads interleaved would otherwise let the second
	// commit overwrite total_paid_amount with a figure missing the first.
	loan := mapping.ToModelLoan(app.Loan)
	var newStatus string
	if err := tx.QueryRow(txCtx, `
		UPDATE loans SET
			total_paid_amount = paid.total,
			status = CASE
				WHEN status = 'DEFAULTED' THEN status
				WHEN paid.total >= principal_amount THEN 'FULLY_PAID'
				ELSE 'ACTIVE'
			END,
			last_updated_at = $2, last_updated_by = $3
		FROM (
			SELECT COALESCE(SUM(principal_due_amount), 0) AS total
			FROM schedule_entries WHERE loan_id = $1 AND status = 'PAID'
		) paid
		WHERE loan_id = $1
		RETURNING status;
	`, loan.LoanID, loan.LastUpdatedAt, loan.LastUpdatedBy).Scan(&newStatus); err != nil {
		return mapTxErr(err, "failed to update loan totals "+loanID)
	}

	if newStatus == string(domain.LoanFullyPaid) {
		if _, err := tx.Exec(txCtx, `
			UPDATE guarantor_holds
			SET status = 'RELEASED', last_updated_at = $2, last_updated_by = $3
			WHERE loan_id = $1 AND status = 'ACTIVE';
		`, loanID, loan.LastUpdatedAt, loan.LastUpdatedBy); err != nil {
			return mapTxErr(err, "failed to release guarantor holds for loan "+loanID)
		}
	}

	return r.Commit(txCtx, tx)
}

// SavePaymentReversal commits the administrative delete-payment override
// atomically: cancels the repayment ledger leg, reopens the schedule entry
// and restores the recomputed loan totals and status.
func (r *PgxLoanRepository) SavePaymentReversal(ctx context.Context, rev domain.PaymentReversal) error {
	tx, txCtx, cancel, err := r.BeginBounded(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(txCtx, tx)

	loanID := rev.Loan.LoanID
	if err := lockLoanTx(txCtx, tx, loanID); err != nil {
		return err
	}

	entry := mapping.ToModelScheduleEntry(rev.ReopenedEntry)
	tag, err := tx.Exec(txCtx, `
		UPDATE schedule_entries
		SET status = 'PENDING', paid_date = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'PAID';
	`, entry.EntryID, entry.LastUpdatedAt, entry.LastUpdatedBy)
	if err != nil {
		return mapTxErr(err, "failed to reopen schedule entry "+entry.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not paid", apperrors.ErrConflict, entry.EntryID)
	}

	if rev.LedgerEntryID != "" {
		tag, err := tx.Exec(txCtx, `
			UPDATE ledger_entries
			SET status = 'CANCELLED', last_updated_at = $2, last_updated_by = $3
			WHERE entry_id = $1 AND status = 'CLEARED';
		`, rev.LedgerEntryID, entry.LastUpdatedAt, entry.LastUpdatedBy)
		if err != nil {
			return mapTxErr(err, "failed to cancel repayment leg "+rev.LedgerEntryID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: ledger entry %s is not cleared", apperrors.ErrConflict, rev.LedgerEntryID)
		}
	}

	// Totals and the FULLY_PAID/ACTIVE decision are recomputed from the
	// schedule inside the transaction, mirroring SavePaymentResult.
	loan := mapping.ToModelLoan(rev.Loan)
	if _, err := tx.Exec(txCtx, `
		UPDATE loans SET
			total_paid_amount = paid.total,
			status = CASE
				WHEN status = 'DEFAULTED' THEN status
				WHEN paid.total >= principal_amount THEN 'FULLY_PAID'
				ELSE 'ACTIVE'
			END,
			last_updated_at = $2, last_updated_by = $3
		FROM (
			SELECT COALESCE(SUM(principal_due_amount), 0) AS total
			FROM schedule_entries WHERE loan_id = $1 AND status = 'PAID'
		) paid
		WHERE loan_id = $1;
	`, loan.LoanID, loan.LastUpdatedAt, loan.LastUpdatedBy); err != nil {
		return mapTxErr(err, "failed to restore loan totals "+loanID)
	}

	return r.Commit(txCtx, tx)
}

// lockLoanTx takes the loan's row lock, serializing concurrent mutations that
// pivot on the same loan.
func lockLoanTx(ctx context.Context, tx pgx.Tx, loanID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT loan_id FROM loans WHERE loan_id = $1 FOR UPDATE;`, loanID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return mapTxErr(err, "failed to lock loan "+loanID)
	}
	return nil
}

// insertScheduleEntriesTx batch-inserts schedule entries inside a transaction.
func insertScheduleEntriesTx(ctx context.Context, tx pgx.Tx, entries []domain.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO schedule_entries (
			entry_id, loan_id, sequence, due_date, principal_due_amount,
			interest_due_amount, penalty_due_amount, amount_to_pay,
			running_balance_amount, currency_code, penalty_rate, status, paid_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	for _, e := range entries {
		m := mapping.ToModelScheduleEntry(e)
		batch.Queue(query,
			m.EntryID, m.LoanID, m.Sequence, m.DueDate, m.PrincipalDueAmount,
			m.InterestDueAmount, m.PenaltyDueAmount, m.AmountToPay,
			m.RunningBalanceAmount, m.CurrencyCode, m.PenaltyRate, m.Status, m.PaidDate,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	return br.Close()
}

// scanLoan scans one loan row.
func scanLoan(row pgx.Row) (*models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID, &m.BorrowerID, &m.PrincipalAmount, &m.CurrencyCode, &m.InterestRate,
		&m.InterestMethod, &m.TermCount, &m.TermPeriod, &m.PenaltyRate, &m.DisbursementDate,
		&m.Status, &m.TotalPaidAmount, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
