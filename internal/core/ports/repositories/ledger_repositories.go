package repositories

import (
	"context"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
)

// LedgerRepositoryFacade persists ledger entries and runs the clearing
// workflow.
//
// ClearEntry must lock the owning account row for the duration of the
// balance check plus the status transition (check-then-act race). All
// mutations run inside a bounded-duration transaction; exceeding it surfaces
// apperrors.ErrTransactionTimeout with no partial state.
type LedgerRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error
	// SaveTransferPair appends both legs of a member-to-member transfer
	// atomically, the credit leg linked to the debit leg as its parent.
	SaveTransferPair(ctx context.Context, debit domain.LedgerEntry, credit domain.LedgerEntry) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ClearEntry transitions PENDING -> CLEARED. For debits it verifies the
	// account's available balance (cleared credits - cleared debits - active
	// holds) against the account's minimum-balance and negative-balance
	// configuration inside the same lock.
	ClearEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error)
	// RejectEntry transitions PENDING -> REJECTED with no balance effect.
	RejectEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error)
	// CancelEntry removes a cleared entry's balance effect (administrative
	// reversal), transitioning CLEARED -> CANCELLED.
	CancelEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error)

	// SumClearedByAccount returns cleared credits minus cleared debits for an
	// account, optionally bounded by an as-of date (inclusive).
	SumClearedByAccount(ctx context.Context, accountID string, asOf *time.Time) (int64, error)
	// ListClearedByAccountBetween returns cleared entries for an account with
	// dates in (from, to], ordered by date then creation time. Used by the
	// day-weighted interest accrual walk.
	ListClearedByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerEntry, error)
	// SumClearedByTypesBetween sums cleared entries of the given types with
	// dates in [from, to], across all accounts in the currency. Feeds the
	// VSLA share-out pool computation.
	SumClearedByTypesBetween(ctx context.Context, types []domain.LedgerType, currencyCode string, from, to time.Time) (int64, error)

	// ListEntriesByAccount returns a page of entries for an account using
	// cursor-token pagination, newest first.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// AccountRepositoryFacade reads savings-account configuration.
type AccountRepositoryFacade interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.SavingsAccount, error)
	SaveAccount(ctx context.Context, account domain.SavingsAccount) error
}

// GuarantorRepositoryFacade persists guarantor holds.
type GuarantorRepositoryFacade interface {
	// SaveHold inserts the hold after re-verifying, inside a per-account
	// lock, that active holds plus the new hold still fit within the
	// account's cleared balance.
	SaveHold(ctx context.Context, hold domain.GuarantorHold) error
	SumActiveHoldsByAccount(ctx context.Context, accountID string) (int64, error)
	ListActiveHoldsByLoan(ctx context.Context, loanID string) ([]domain.GuarantorHold, error)
	ReleaseHoldsByLoan(ctx context.Context, loanID string, actorID string) error
}

// VslaRepositoryFacade reads savings-group cycles.
type VslaRepositoryFacade interface {
	FindCycleByID(ctx context.Context, cycleID string) (*domain.VslaCycle, error)
	SaveCycle(ctx context.Context, cycle domain.VslaCycle) error
}
