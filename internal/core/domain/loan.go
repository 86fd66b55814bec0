package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestMethod selects how interest accrues across a loan's schedule.
type InterestMethod string

const (
	FlatRate       InterestMethod = "FLAT_RATE"
	FixedRate      InterestMethod = "FIXED_RATE"
	Mortgage       InterestMethod = "MORTGAGE"
	OneTime        InterestMethod = "ONE_TIME"
	ReducingAmount InterestMethod = "REDUCING_AMOUNT"
	Compound       InterestMethod = "COMPOUND"
)

// TermPeriod is the calendar unit between two scheduled installments.
type TermPeriod string

const (
	TermDays   TermPeriod = "DAYS"
	TermWeeks  TermPeriod = "WEEKS"
	TermMonths TermPeriod = "MONTHS"
	TermYears  TermPeriod = "YEARS"
)

// PeriodsPerYear returns how many periods of this unit make up one year,
// used to convert an annual rate into a per-period rate.
func (p TermPeriod) PeriodsPerYear() int64 {
	switch p {
	case TermDays:
		return 365
	case TermWeeks:
		return 52
	case TermMonths:
		return 12
	case TermYears:
		return 1
	default:
		return 0
	}
}

// LoanStatus tracks a loan through its lifecycle. Transitions are monotonic:
// PENDING -> ACTIVE -> {FULLY_PAID, DEFAULTED}. Reverting FULLY_PAID to
// ACTIVE only happens through the administrative delete-payment override.
type LoanStatus string

const (
	LoanPending   LoanStatus = "PENDING"
	LoanActive    LoanStatus = "ACTIVE"
	LoanFullyPaid LoanStatus = "FULLY_PAID"
	LoanDefaulted LoanStatus = "DEFAULTED"
)

// Loan represents an approved credit facility.
type Loan struct {
	LoanID           string          `json:"loanID"`
	BorrowerID       string          `json:"borrowerID"` // Member reference
	Principal        Money           `json:"principal"`
	InterestRate     decimal.Decimal `json:"interestRate"` // Annual rate, percent
	InterestMethod   InterestMethod  `json:"interestMethod"`
	TermCount        int             `json:"termCount"`
	TermPeriod       TermPeriod      `json:"termPeriod"`
	PenaltyRate      decimal.Decimal `json:"penaltyRate"` // Percent, applied by the penalty strategy
	DisbursementDate *time.Time      `json:"disbursementDate"`
	Status           LoanStatus      `json:"status"`
	// TotalPaid caches the sum of principal applied by paid schedule entries.
	// It is strictly derived: recomputed from the schedule on every write,
	// never incrementally patched.
	TotalPaid Money `json:"totalPaid"`
	AuditFields
}

// IsTerminal reports whether the loan has reached a final status.
func (l *Loan) IsTerminal() bool {
	return l.Status == LoanFullyPaid || l.Status == LoanDefaulted
}
