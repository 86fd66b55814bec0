package models

import "time"

// LedgerEntry is the row model for the ledger_entries table.
type LedgerEntry struct {
	EntryID         string     `db:"entry_id"`
	AccountID       string     `db:"account_id"`
	MemberID        string     `db:"member_id"`
	EntryDate       time.Time  `db:"entry_date"`
	Amount          int64      `db:"amount"` // Always positive; direction carries the sign
	CurrencyCode    string     `db:"currency_code"`
	Direction       string     `db:"direction"`
	Status          string     `db:"status"`
	EntryType       string     `db:"entry_type"`
	LoanID          *string    `db:"loan_id"`           // Nullable
	ScheduleEntryID *string    `db:"schedule_entry_id"` // Nullable
	ParentEntryID   *string    `db:"parent_entry_id"`   // Nullable
	Notes           string     `db:"notes"`
	ClearedAt       *time.Time `db:"cleared_at"` // Nullable
	AuditFields
}
