package services

import (
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
)

// zeroPenalty never assesses a late fee. It is the default strategy; tenants
// that charge late fees swap in flatOverduePenalty.
type zeroPenalty struct{}

// NewZeroPenaltyStrategy returns a strategy that assesses no penalties.
func NewZeroPenaltyStrategy() portssvc.PenaltyStrategy {
	return zeroPenalty{}
}

func (zeroPenalty) Assess(entry domain.ScheduleEntry, paidDate time.Time) domain.Money {
	return domain.ZeroMoney(entry.AmountToPay.CurrencyCode)
}

// flatOverduePenalty charges the entry's configured penalty rate against its
// planned amount once the payment lands after the due date.
type flatOverduePenalty struct{}

// NewFlatOverduePenaltyStrategy returns a strategy charging the entry's
// penalty rate on its planned amount when paid late.
func NewFlatOverduePenaltyStrategy() portssvc.PenaltyStrategy {
	return flatOverduePenalty{}
}

func (flatOverduePenalty) Assess(entry domain.ScheduleEntry, paidDate time.Time) domain.Money {
	if !paidDate.After(entry.DueDate) {
		return domain.ZeroMoney(entry.AmountToPay.CurrencyCode)
	}
	return entry.AmountToPay.MultiplyByRate(entry.PenaltyRate)
}
