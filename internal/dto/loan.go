package dto

import (
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest creates a loan in PENDING status. Amounts are integer
// minor units.
type CreateLoanRequest struct {
	BorrowerID     string                `json:"borrowerID" binding:"required"`
	Principal      int64                 `json:"principal" binding:"required,gt=0"`
	CurrencyCode   string                `json:"currencyCode" binding:"required,len=3"`
	InterestRate   decimal.Decimal       `json:"interestRate" binding:"required"`
	InterestMethod domain.InterestMethod `json:"interestMethod" binding:"required"`
	TermCount      int                   `json:"termCount" binding:"required,gte=1"`
	TermPeriod     domain.TermPeriod     `json:"termPeriod" binding:"required"`
	PenaltyRate    decimal.Decimal       `json:"penaltyRate"`
}

// DisburseLoanRequest activates a pending loan and generates its schedule.
type DisburseLoanRequest struct {
	DisbursementDate time.Time `json:"disbursementDate" binding:"required"`
	// CreditAccountID is the borrower's savings account receiving the
	// disbursement credit.
	CreditAccountID string `json:"creditAccountID" binding:"required"`
}

// CreateGuarantorHoldRequest reserves guarantor funds behind a loan.
type CreateGuarantorHoldRequest struct {
	LoanID            string `json:"loanID" binding:"required"`
	GuarantorMemberID string `json:"guarantorMemberID" binding:"required"`
	AccountID         string `json:"accountID" binding:"required"`
	Amount            int64  `json:"amount" binding:"required,gt=0"`
}

// LoanResponse is the outward-facing loan representation.
type LoanResponse struct {
	LoanID           string                `json:"loanID"`
	BorrowerID       string                `json:"borrowerID"`
	Principal        domain.Money          `json:"principal"`
	InterestRate     decimal.Decimal       `json:"interestRate"`
	InterestMethod   domain.InterestMethod `json:"interestMethod"`
	TermCount        int                   `json:"termCount"`
	TermPeriod       domain.TermPeriod     `json:"termPeriod"`
	PenaltyRate      decimal.Decimal       `json:"penaltyRate"`
	DisbursementDate *time.Time            `json:"disbursementDate,omitempty"`
	Status           domain.LoanStatus     `json:"status"`
	TotalPaid        domain.Money          `json:"totalPaid"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// ToLoanResponse converts a domain loan to its response DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:           l.LoanID,
		BorrowerID:       l.BorrowerID,
		Principal:        l.Principal,
		InterestRate:     l.InterestRate,
		InterestMethod:   l.InterestMethod,
		TermCount:        l.TermCount,
		TermPeriod:       l.TermPeriod,
		PenaltyRate:      l.PenaltyRate,
		DisbursementDate: l.DisbursementDate,
		Status:           l.Status,
		TotalPaid:        l.TotalPaid,
		CreatedAt:        l.CreatedAt,
	}
}

// ScheduleEntryResponse is one installment row.
type ScheduleEntryResponse struct {
	EntryID        string             `json:"entryID"`
	Sequence       int                `json:"sequence"`
	DueDate        time.Time          `json:"dueDate"`
	PrincipalDue   domain.Money       `json:"principalDue"`
	InterestDue    domain.Money       `json:"interestDue"`
	PenaltyDue     domain.Money       `json:"penaltyDue"`
	AmountToPay    domain.Money       `json:"amountToPay"`
	RunningBalance domain.Money       `json:"runningBalance"`
	Status         domain.EntryStatus `json:"status"`
	PaidDate       *time.Time         `json:"paidDate,omitempty"`
}

// ScheduleResponse is the full repayment schedule of a loan.
type ScheduleResponse struct {
	LoanID  string                  `json:"loanID"`
	Entries []ScheduleEntryResponse `json:"entries"`
}

// ToScheduleResponse converts a domain schedule to its response DTO.
func ToScheduleResponse(s *domain.Schedule) ScheduleResponse {
	entries := make([]ScheduleEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = ScheduleEntryResponse{
			EntryID:        e.EntryID,
			Sequence:       e.Sequence,
			DueDate:        e.DueDate,
			PrincipalDue:   e.PrincipalDue,
			InterestDue:    e.InterestDue,
			PenaltyDue:     e.PenaltyDue,
			AmountToPay:    e.AmountToPay,
			RunningBalance: e.RunningBalance,
			Status:         e.Status,
			PaidDate:       e.PaidDate,
		}
	}
	return ScheduleResponse{LoanID: s.LoanID, Entries: entries}
}
