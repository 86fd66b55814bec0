package domain

import "time"

// EntryDirection indicates whether a ledger entry is a Debit or a Credit
// relative to the owning account.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// LedgerStatus is the clearing state of a ledger entry. Only CLEARED entries
// affect balances. The common path is PENDING -> CLEARED or PENDING ->
// REJECTED; CANCELLED is reserved for administrative reversal.
type LedgerStatus string

const (
	LedgerPending   LedgerStatus = "PENDING"
	LedgerCleared   LedgerStatus = "CLEARED"
	LedgerRejected  LedgerStatus = "REJECTED"
	LedgerCancelled LedgerStatus = "CANCELLED"
)

// LedgerType categorizes the money movement an entry records.
type LedgerType string

const (
	TypeDeposit          LedgerType = "DEPOSIT"
	TypeWithdrawal       LedgerType = "WITHDRAWAL"
	TypeLoanDisbursement LedgerType = "LOAN_DISBURSEMENT"
	TypeLoanRepayment    LedgerType = "LOAN_REPAYMENT"
	TypeFee              LedgerType = "FEE"
	TypeInterestPosting  LedgerType = "INTEREST_POSTING"
	TypeTransfer         LedgerType = "TRANSFER"
	TypeContribution     LedgerType = "CONTRIBUTION" // VSLA cycle contribution
	TypePenalty          LedgerType = "PENALTY"
)

// LedgerEntry is an append-mostly record of a money movement against a
// member's savings account. Amount is always stored positive; Direction
// carries the sign.
type LedgerEntry struct {
	EntryID   string         `json:"entryID"`
	AccountID string         `json:"accountID"`
	MemberID  string         `json:"memberID"`
	Date      time.Time      `json:"date"`
	Amount    Money          `json:"amount"`
	Direction EntryDirection `json:"direction"`
	Status    LedgerStatus   `json:"status"`
	Type      LedgerType     `json:"type"`
	// Optional linkage for loan-related entries.
	LoanID          *string `json:"loanID"`
	ScheduleEntryID *string `json:"scheduleEntryID"`
	// Optional parent leg for paired transfers.
	ParentEntryID *string `json:"parentEntryID"`
	Notes         string  `json:"notes"`
	AuditFields
}

// SignedAmount returns the amount signed from the account's point of view:
// credits positive, debits negative.
func (e *LedgerEntry) SignedAmount() Money {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}
