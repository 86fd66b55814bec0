package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a repayment schedule entry.
type EntryStatus string

const (
	EntryPending EntryStatus = "PENDING"
	EntryPaid    EntryStatus = "PAID"
)

// ScheduleEntry is one due installment of a loan's repayment schedule.
//
// While PENDING the monetary figures are the generated plan and may be
// regenerated when an off-plan payment changes the remaining trajectory.
// Once PAID they freeze into the historical record of the amounts actually
// applied and are never mutated again.
type ScheduleEntry struct {
	EntryID        string          `json:"entryID"`
	LoanID         string          `json:"loanID"`
	Sequence       int             `json:"sequence"` // Strictly increasing per loan
	DueDate        time.Time       `json:"dueDate"`
	PrincipalDue   Money           `json:"principalDue"`
	InterestDue    Money           `json:"interestDue"`
	PenaltyDue     Money           `json:"penaltyDue"`
	AmountToPay    Money           `json:"amountToPay"`    // principal + interest + penalty at generation time
	RunningBalance Money           `json:"runningBalance"` // Outstanding principal after this installment
	PenaltyRate    decimal.Decimal `json:"penaltyRate"`
	Status         EntryStatus     `json:"status"`
	PaidDate       *time.Time      `json:"paidDate"`
	AuditFields
}

// Schedule is the ordered list of installments owned by a single loan.
// Entries are kept sorted by sequence index.
type Schedule struct {
	LoanID  string          `json:"loanID"`
	Entries []ScheduleEntry `json:"entries"`
}

// NextPending returns the earliest-sequence pending entry, or nil when the
// explicit schedule is exhausted.
func (s *Schedule) NextPending() *ScheduleEntry {
	for i := range s.Entries {
		if s.Entries[i].Status == EntryPending {
			return &s.Entries[i]
		}
	}
	return nil
}

// FindEntry locates an entry by its ID, or nil when absent.
func (s *Schedule) FindEntry(entryID string) *ScheduleEntry {
	for i := range s.Entries {
		if s.Entries[i].EntryID == entryID {
			return &s.Entries[i]
		}
	}
	return nil
}

// PendingAfter returns the pending entries with a sequence strictly greater
// than seq, in order.
func (s *Schedule) PendingAfter(seq int) []ScheduleEntry {
	var tail []ScheduleEntry
	for _, e := range s.Entries {
		if e.Status == EntryPending && e.Sequence > seq {
			tail = append(tail, e)
		}
	}
	return tail
}

// PaidPrincipalTotal sums the principal actually applied across paid entries.
// This is the canonical source for Loan.TotalPaid.
func (s *Schedule) PaidPrincipalTotal(currencyCode string) Money {
	total := ZeroMoney(currencyCode)
	for _, e := range s.Entries {
		if e.Status == EntryPaid {
			total = total.MustAdd(e.PrincipalDue)
		}
	}
	return total
}

// PendingAmountTotal sums amount_to_pay across pending entries: the loan's
// outstanding balance as derived from the schedule.
func (s *Schedule) PendingAmountTotal(currencyCode string) Money {
	total := ZeroMoney(currencyCode)
	for _, e := range s.Entries {
		if e.Status == EntryPending {
			total = total.MustAdd(e.AmountToPay)
		}
	}
	return total
}

// MaxSequence returns the highest sequence index present, 0 for an empty
// schedule.
func (s *Schedule) MaxSequence() int {
	max := 0
	for _, e := range s.Entries {
		if e.Sequence > max {
			max = e.Sequence
		}
	}
	return max
}
