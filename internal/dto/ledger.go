package dto

import (
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
)

// AppendLedgerEntryRequest records a money movement against an account.
type AppendLedgerEntryRequest struct {
	AccountID string                `json:"accountID" binding:"required"`
	MemberID  string                `json:"memberID" binding:"required"`
	Date      time.Time             `json:"date" binding:"required"`
	Amount    int64                 `json:"amount" binding:"required,gt=0"`
	Direction domain.EntryDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	Type      domain.LedgerType     `json:"type" binding:"required"`
	// ClearImmediately posts the entry as already cleared, the manual-teller
	// flow. Debits still go through the balance check.
	ClearImmediately bool    `json:"clearImmediately"`
	LoanID           *string `json:"loanID"`
	Notes            string  `json:"notes"`
}

// TransferRequest moves funds between two member accounts as paired legs.
type TransferRequest struct {
	FromAccountID string    `json:"fromAccountID" binding:"required"`
	FromMemberID  string    `json:"fromMemberID" binding:"required"`
	ToAccountID   string    `json:"toAccountID" binding:"required"`
	ToMemberID    string    `json:"toMemberID" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Amount        int64     `json:"amount" binding:"required,gt=0"`
	Notes         string    `json:"notes"`
}

// LedgerEntryResponse is the outward-facing ledger entry representation.
type LedgerEntryResponse struct {
	EntryID         string                `json:"entryID"`
	AccountID       string                `json:"accountID"`
	MemberID        string                `json:"memberID"`
	Date            time.Time             `json:"date"`
	Amount          domain.Money          `json:"amount"`
	Direction       domain.EntryDirection `json:"direction"`
	Status          domain.LedgerStatus   `json:"status"`
	Type            domain.LedgerType     `json:"type"`
	LoanID          *string               `json:"loanID,omitempty"`
	ScheduleEntryID *string               `json:"scheduleEntryID,omitempty"`
	ParentEntryID   *string               `json:"parentEntryID,omitempty"`
	Notes           string                `json:"notes,omitempty"`
}

// ToLedgerEntryResponse converts a domain entry to its DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		AccountID:       e.AccountID,
		MemberID:        e.MemberID,
		Date:            e.Date,
		Amount:          e.Amount,
		Direction:       e.Direction,
		Status:          e.Status,
		Type:            e.Type,
		LoanID:          e.LoanID,
		ScheduleEntryID: e.ScheduleEntryID,
		ParentEntryID:   e.ParentEntryID,
		Notes:           e.Notes,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}

// ListLedgerEntriesResponse is a paginated ledger listing.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// PostInterestRequest posts savings interest for a date range.
type PostInterestRequest struct {
	RatePercent string    `json:"ratePercent" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
}

// BalanceResponse reports a computed balance.
type BalanceResponse struct {
	Balance domain.Money `json:"balance"`
}
