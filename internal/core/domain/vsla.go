package domain

import "time"

// VslaCycleStatus tracks a savings-group cycle through its fixed term.
type VslaCycleStatus string

const (
	CycleOpen      VslaCycleStatus = "OPEN"
	CycleSharedOut VslaCycleStatus = "SHARED_OUT"
)

// VslaCycle is a fixed-term savings-group cycle. The core computes its
// distributable share-out pool by summing cleared, type-filtered ledger
// entries over the cycle window; the full allocation of that pool back to
// members is an additive business rule layered on top.
type VslaCycle struct {
	CycleID      string          `json:"cycleID"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	Status       VslaCycleStatus `json:"status"`
	AuditFields
}
