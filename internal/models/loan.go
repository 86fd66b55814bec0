package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus mirrors the domain lifecycle states at the persistence layer.
type LoanStatus string

const (
	LoanPending   LoanStatus = "PENDING"
	LoanActive    LoanStatus = "ACTIVE"
	LoanFullyPaid LoanStatus = "FULLY_PAID"
	LoanDefaulted LoanStatus = "DEFAULTED"
)

// Loan is the row model for the loans table. Monetary amounts are stored as
// integer minor units; rates as exact numerics.
type Loan struct {
	LoanID           string          `db:"loan_id"`
	BorrowerID       string          `db:"borrower_id"`
	PrincipalAmount  int64           `db:"principal_amount"`
	CurrencyCode     string          `db:"currency_code"`
	InterestRate     decimal.Decimal `db:"interest_rate"`
	InterestMethod   string          `db:"interest_method"`
	TermCount        int             `db:"term_count"`
	TermPeriod       string          `db:"term_period"`
	PenaltyRate      decimal.Decimal `db:"penalty_rate"`
	DisbursementDate *time.Time      `db:"disbursement_date"` // Nullable until disbursed
	Status           LoanStatus      `db:"status"`
	TotalPaidAmount  int64           `db:"total_paid_amount"`
	AuditFields
}
