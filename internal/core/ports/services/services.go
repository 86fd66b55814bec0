// Package services defines the facades the surrounding application layers
// program against. The core is a library-style engine: these interfaces are
// its public operations, translated to HTTP by the handlers package.
package services

import (
	"context"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/shopspring/decimal"
)

// LoanSvcFacade creates, disburses and administers loans.
type LoanSvcFacade interface {
	CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actorID string) (*domain.Loan, error)
	// DisburseLoan generates the repayment schedule, activates the loan and
	// appends the disbursement credit against the borrower's account.
	DisburseLoan(ctx context.Context, loanID string, req dto.DisburseLoanRequest, actorID string) (*domain.Schedule, error)
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	GetSchedule(ctx context.Context, loanID string) (*domain.Schedule, error)
	// CreateGuarantorHold reserves funds in a guarantor's savings account to
	// back the loan, validating available balance first.
	CreateGuarantorHold(ctx context.Context, req dto.CreateGuarantorHoldRequest, actorID string) (*domain.GuarantorHold, error)
	// MarkDefaulted transitions an active loan to DEFAULTED and releases its
	// guarantor holds.
	MarkDefaulted(ctx context.Context, loanID string, actorID string) (*domain.Loan, error)
}

// PaymentSvcFacade is the payment allocator (the orchestration point where an
// incoming payment is applied) plus its administrative reversal.
type PaymentSvcFacade interface {
	ApplyPayment(ctx context.Context, loanID string, req dto.RecordPaymentRequest, actorID string) (*domain.PaymentResult, error)
	// DeletePayment reverses a repayment ledger leg, reopens the schedule
	// entry and recomputes loan totals and status.
	DeletePayment(ctx context.Context, ledgerEntryID string, actorID string) error
}

// LedgerSvcFacade appends money movements and runs the clearing workflow.
type LedgerSvcFacade interface {
	Append(ctx context.Context, req dto.AppendLedgerEntryRequest, actorID string) (*domain.LedgerEntry, error)
	Transfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.LedgerEntry, *domain.LedgerEntry, error)
	Clear(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error)
	Reject(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error)
	// Reverse removes a cleared entry's effect. It refuses to reverse
	// loan-linked entries that would desynchronize the loan's recorded
	// status; those must go through PaymentSvcFacade.DeletePayment.
	Reverse(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error)
	ListByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// BalanceSvcFacade is the read-side balance engine.
type BalanceSvcFacade interface {
	// AvailableBalance is cleared credits minus cleared debits minus active
	// guarantor holds, optionally bounded by an as-of date.
	AvailableBalance(ctx context.Context, accountID string, asOf *time.Time) (domain.Money, error)
	// LoanOutstandingBalance derives the outstanding amount from the
	// schedule (sum of pending amount_to_pay), the canonical source of truth.
	LoanOutstandingBalance(ctx context.Context, loanID string) (domain.Money, error)
	// AccruedInterestForPeriod walks the cleared-transaction history between
	// two dates and accrues simple day-weighted interest (ACT/365) on the
	// running balance of each inter-transaction interval.
	AccruedInterestForPeriod(ctx context.Context, accountID string, ratePercent decimal.Decimal, startDate, endDate time.Time) (domain.Money, error)
	// PostSavingsInterest computes the accrual and appends it as a cleared
	// credit ledger entry.
	PostSavingsInterest(ctx context.Context, accountID string, ratePercent decimal.Decimal, startDate, endDate time.Time, actorID string) (domain.Money, error)
}

// VslaSvcFacade exposes the savings-group cycle computations built on the
// balance engine's summation primitives.
type VslaSvcFacade interface {
	// ShareoutPool sums cleared contribution, penalty and interest entries
	// over the cycle window: the total available for share-out.
	ShareoutPool(ctx context.Context, cycleID string) (domain.Money, error)
}

// PenaltyStrategy decides the late fee owed on a schedule entry at payment
// time. Penalty computation is pluggable because the business rules differ
// between loan and asset-lease contexts.
type PenaltyStrategy interface {
	Assess(entry domain.ScheduleEntry, paidDate time.Time) domain.Money
}

// Notifier dispatches fire-and-forget side effects after the financial
// transaction commits. Failures are logged and swallowed, never propagated.
type Notifier interface {
	PaymentRecorded(ctx context.Context, result domain.PaymentResult)
	LoanDisbursed(ctx context.Context, loan domain.Loan)
}

// Clock abstracts time for the core so callers control the date context.
type Clock interface {
	Now() time.Time
}
