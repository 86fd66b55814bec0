package models

import "time"

// VslaCycle is the row model for the vsla_cycles table.
type VslaCycle struct {
	CycleID      string    `db:"cycle_id"`
	Name         string    `db:"name"`
	CurrencyCode string    `db:"currency_code"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Status       string    `db:"status"`
	AuditFields
}
