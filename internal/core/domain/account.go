package domain

// SavingsAccount is a member's interest-bearing savings account. The core
// only needs its balance configuration; member management lives elsewhere.
type SavingsAccount struct {
	AccountID    string `json:"accountID"`
	MemberID     string `json:"memberID"`
	CurrencyCode string `json:"currencyCode"`
	// MinimumBalance is the floor a cleared debit may never breach unless
	// AllowNegative is set.
	MinimumBalance Money `json:"minimumBalance"`
	AllowNegative  bool  `json:"allowNegative"`
	IsActive       bool  `json:"isActive"`
	AuditFields
}
