package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is the row model for the schedule_entries table.
type ScheduleEntry struct {
	EntryID              string          `db:"entry_id"`
	LoanID               string          `db:"loan_id"`
	Sequence             int             `db:"sequence"`
	DueDate              time.Time       `db:"due_date"`
	PrincipalDueAmount   int64           `db:"principal_due_amount"`
	InterestDueAmount    int64           `db:"interest_due_amount"`
	PenaltyDueAmount     int64           `db:"penalty_due_amount"`
	AmountToPay          int64           `db:"amount_to_pay"`
	RunningBalanceAmount int64           `db:"running_balance_amount"`
	CurrencyCode         string          `db:"currency_code"`
	PenaltyRate          decimal.Decimal `db:"penalty_rate"`
	Status               string          `db:"status"`
	PaidDate             *time.Time      `db:"paid_date"` // Nullable
	AuditFields
}
