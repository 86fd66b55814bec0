package models

// GuarantorHold is the row model for the guarantor_holds table.
type GuarantorHold struct {
	HoldID            string `db:"hold_id"`
	LoanID            string `db:"loan_id"`
	GuarantorMemberID string `db:"guarantor_member_id"`
	AccountID         string `db:"account_id"`
	Amount            int64  `db:"amount"`
	CurrencyCode      string `db:"currency_code"`
	Status            string `db:"status"`
	AuditFields
}
