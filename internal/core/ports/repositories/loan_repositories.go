package repositories

import (
	"context"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
)

// LoanRepositoryFacade persists loans and the atomic multi-entity mutations
// that pivot on a loan. The composite methods commit loan + schedule + ledger
// changes as one unit; a failure anywhere rolls back everything.
//
// Concurrency contract: every composite method must serialize per loan
// (row-level lock or equivalent) so concurrent payments against the same loan
// cannot interleave. Schedule entry transitions must be conditional on the
// entry still being PENDING so exactly one of two racing payments wins; the
// loser surfaces apperrors.ErrAlreadyPaid.
type LoanRepositoryFacade interface {
	SaveLoan(ctx context.Context, loan domain.Loan) error
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// DisburseLoan activates a pending loan, inserts its generated schedule
	// and appends the disbursement credit ledger entry atomically.
	DisburseLoan(ctx context.Context, loan domain.Loan, entries []domain.ScheduleEntry, disbursement domain.LedgerEntry) error

	// SavePaymentResult commits one accepted payment: marks the entry paid,
	// replaces the pending tail when requested, updates loan totals/status,
	// appends the funding ledger leg and releases guarantor holds on full
	// payoff.
	SavePaymentResult(ctx context.Context, app domain.PaymentApplication) error

	// SavePaymentReversal commits the administrative delete-payment override:
	// cancels the repayment ledger leg, reopens the schedule entry and
	// restores the recomputed loan totals/status.
	SavePaymentReversal(ctx context.Context, rev domain.PaymentReversal) error
}

// ScheduleRepositoryFacade reads the repayment schedule owned by a loan.
// All schedule mutations go through the loan repository's composite methods.
type ScheduleRepositoryFacade interface {
	FindScheduleByLoanID(ctx context.Context, loanID string) (*domain.Schedule, error)
	FindEntryByID(ctx context.Context, entryID string) (*domain.ScheduleEntry, error)
}
