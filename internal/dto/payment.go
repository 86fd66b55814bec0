package dto

import (
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
)

// RecordPaymentRequest applies a payment against a loan's schedule. Amounts
// are integer minor units in the loan's currency.
type RecordPaymentRequest struct {
	PaidDate      time.Time `json:"paidDate" binding:"required"`
	PaidPrincipal int64     `json:"paidPrincipal" binding:"required,gt=0"`
	PaidInterest  int64     `json:"paidInterest" binding:"gte=0"`
	PaidPenalty   int64     `json:"paidPenalty" binding:"gte=0"`
	// TargetScheduleEntryID selects a specific installment; when empty the
	// next pending entry is targeted.
	TargetScheduleEntryID string `json:"targetScheduleEntryID"`
	// FundingAccountID, when set, debits the member's savings account for
	// the payment; when empty the payment is cash.
	FundingAccountID string `json:"fundingAccountID"`
}

// PaymentResultResponse reports a successfully applied payment.
type PaymentResultResponse struct {
	Loan          LoanResponse            `json:"loan"`
	PaidEntry     ScheduleEntryResponse   `json:"paidEntry"`
	NewEntries    []ScheduleEntryResponse `json:"newEntries,omitempty"`
	LedgerEntryID *string                 `json:"ledgerEntryID,omitempty"`
}

// ToPaymentResultResponse converts a domain payment result to its DTO.
func ToPaymentResultResponse(r *domain.PaymentResult) PaymentResultResponse {
	sched := domain.Schedule{Entries: r.NewEntries}
	resp := PaymentResultResponse{
		Loan:          ToLoanResponse(&r.Loan),
		LedgerEntryID: r.LedgerEntryID,
	}
	paid := ToScheduleResponse(&domain.Schedule{Entries: []domain.ScheduleEntry{r.PaidEntry}})
	resp.PaidEntry = paid.Entries[0]
	if len(r.NewEntries) > 0 {
		resp.NewEntries = ToScheduleResponse(&sched).Entries
	}
	return resp
}
