package domain

// HoldStatus is the lifecycle state of a guarantor hold.
type HoldStatus string

const (
	HoldActive   HoldStatus = "ACTIVE"
	HoldReleased HoldStatus = "RELEASED"
)

// GuarantorHold reserves funds in a guarantor's savings account to back a
// loan without withdrawing them. Active holds reduce the account's available
// balance; holds are released when the backed loan reaches a terminal status.
type GuarantorHold struct {
	HoldID            string     `json:"holdID"`
	LoanID            string     `json:"loanID"`
	GuarantorMemberID string     `json:"guarantorMemberID"`
	AccountID         string     `json:"accountID"` // Backing savings account
	Amount            Money      `json:"amount"`
	Status            HoldStatus `json:"status"`
	AuditFields
}
