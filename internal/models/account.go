package models

// SavingsAccount is the row model for the savings_accounts table.
type SavingsAccount struct {
	AccountID            string `db:"account_id"`
	MemberID             string `db:"member_id"`
	CurrencyCode         string `db:"currency_code"`
	MinimumBalanceAmount int64  `db:"minimum_balance_amount"`
	AllowNegative        bool   `db:"allow_negative"`
	IsActive             bool   `db:"is_active"`
	AuditFields
}
