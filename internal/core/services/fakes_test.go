package services_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
)

// fakeLoanStore is a stateful in-memory double for one loan's persistence,
// mirroring the transactional rules the SQL layer enforces: the entry
// transition is conditional on PENDING, the loan's totals and FULLY_PAID
// decision are recomputed from the stored schedule at commit time, and a
// cleared funding debit is re-verified against the account's cleared balance
// and active holds under the same lock. It lets tests drive races and
// commit-time rejections that mock expectations cannot express.
type fakeLoanStore struct {
	mu      sync.Mutex
	loan    domain.Loan
	entries []domain.ScheduleEntry

	// Funding-account state for cleared-debit verification.
	clearedBalance int64
	heldAmount     int64
	minimumBalance int64

	ledgerEntries []domain.LedgerEntry

	// onScheduleRead runs after FindScheduleByLoanID takes its snapshot,
	// outside the store lock, letting tests widen the window between a read
	// and the commit that follows it.
	onScheduleRead func()
}

var _ portsrepo.LoanRepositoryFacade = (*fakeLoanStore)(nil)
var _ portsrepo.ScheduleRepositoryFacade = (*fakeLoanStore)(nil)

func (f *fakeLoanStore) SaveLoan(ctx context.Context, loan domain.Loan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loan = loan
	return nil
}

func (f *fakeLoanStore) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if loanID != f.loan.LoanID {
		return nil, apperrors.ErrNotFound
	}
	loan := f.loan
	return &loan, nil
}

func (f *fakeLoanStore) DisburseLoan(ctx context.Context, loan domain.Loan, entries []domain.ScheduleEntry, disbursement domain.LedgerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loan = loan
	f.entries = append([]domain.ScheduleEntry(nil), entries...)
	f.ledgerEntries = append(f.ledgerEntries, disbursement)
	return nil
}

func (f *fakeLoanStore) FindScheduleByLoanID(ctx context.Context, loanID string) (*domain.Schedule, error) {
	f.mu.Lock()
	if loanID != f.loan.LoanID {
		f.mu.Unlock()
		return nil, apperrors.ErrNotFound
	}
	entries := append([]domain.ScheduleEntry(nil), f.entries...)
	f.mu.Unlock()

	if f.onScheduleRead != nil {
		f.onScheduleRead()
	}
	return &domain.Schedule{LoanID: loanID, Entries: entries}, nil
}

func (f *fakeLoanStore) FindEntryByID(ctx context.Context, entryID string) (*domain.ScheduleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.entryIndexLocked(entryID)
	if idx < 0 {
		return nil, apperrors.ErrNotFound
	}
	entry := f.entries[idx]
	return &entry, nil
}

func (f *fakeLoanStore) SavePaymentResult(ctx context.Context, app domain.PaymentApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.entryIndexLocked(app.PaidEntry.EntryID)
	if idx < 0 {
		return apperrors.ErrNotFound
	}
	if f.entries[idx].Status != domain.EntryPending {
		return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPaid, app.PaidEntry.EntryID)
	}

	if leg := app.LedgerEntry; leg != nil && leg.Direction == domain.Debit && leg.Status == domain.LedgerCleared {
		if err := f.checkDebitAllowedLocked(leg.Amount.Amount); err != nil {
			return err
		}
	}

	f.entries[idx] = app.PaidEntry
	if app.ReplaceTailAfter {
		kept := make([]domain.ScheduleEntry, 0, len(f.entries))
		for _, e := range f.entries {
			if e.Status == domain.EntryPending && e.Sequence > app.PaidEntry.Sequence {
				continue
			}
			kept = append(kept, e)
		}
		f.entries = append(kept, app.RegeneratedTail...)
	}

	if leg := app.LedgerEntry; leg != nil {
		f.ledgerEntries = append(f.ledgerEntries, *leg)
		if leg.Direction == domain.Debit && leg.Status == domain.LedgerCleared {
			f.clearedBalance -= leg.Amount.Amount
		}
	}

	f.recomputeLoanLocked(app.Loan)
	if f.loan.Status == domain.LoanFullyPaid {
		f.heldAmount = 0
	}
	return nil
}

func (f *fakeLoanStore) SavePaymentReversal(ctx context.Context, rev domain.PaymentReversal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.entryIndexLocked(rev.ReopenedEntry.EntryID)
	if idx < 0 {
		return apperrors.ErrNotFound
	}
	if f.entries[idx].Status != domain.EntryPaid {
		return fmt.Errorf("%w: entry %s is not paid", apperrors.ErrConflict, rev.ReopenedEntry.EntryID)
	}

	if rev.LedgerEntryID != "" {
		cancelled := false
		for i := range f.ledgerEntries {
			leg := &f.ledgerEntries[i]
			if leg.EntryID == rev.LedgerEntryID && leg.Status == domain.LedgerCleared {
				leg.Status = domain.LedgerCancelled
				f.clearedBalance += leg.Amount.Amount
				cancelled = true
			}
		}
		if !cancelled {
			return fmt.Errorf("%w: ledger entry %s is not cleared", apperrors.ErrConflict, rev.LedgerEntryID)
		}
	}

	f.entries[idx] = rev.ReopenedEntry
	f.recomputeLoanLocked(rev.Loan)
	return nil
}

func (f *fakeLoanStore) entryIndexLocked(entryID string) int {
	for i := range f.entries {
		if f.entries[i].EntryID == entryID {
			return i
		}
	}
	return -1
}

// recomputeLoanLocked derives total_paid and the FULLY_PAID/ACTIVE decision
// from the stored schedule, never from the caller's figures.
func (f *fakeLoanStore) recomputeLoanLocked(caller domain.Loan) {
	total := int64(0)
	for _, e := range f.entries {
		if e.Status == domain.EntryPaid {
			total += e.PrincipalDue.Amount
		}
	}
	f.loan.TotalPaid = domain.NewMoney(total, f.loan.Principal.CurrencyCode)
	if f.loan.Status != domain.LoanDefaulted {
		if total >= f.loan.Principal.Amount {
			f.loan.Status = domain.LoanFullyPaid
		} else {
			f.loan.Status = domain.LoanActive
		}
	}
	f.loan.LastUpdatedAt = caller.LastUpdatedAt
	f.loan.LastUpdatedBy = caller.LastUpdatedBy
}

func (f *fakeLoanStore) checkDebitAllowedLocked(amount int64) error {
	available := f.clearedBalance - f.heldAmount
	floor := available - amount
	switch {
	case floor < 0:
		return fmt.Errorf("%w: available %d, debit %d", apperrors.ErrInsufficientFunds, available, amount)
	case floor < f.minimumBalance:
		return fmt.Errorf("%w: would drop to %d below minimum %d", apperrors.ErrBelowMinimumBalance, floor, f.minimumBalance)
	}
	return nil
}
