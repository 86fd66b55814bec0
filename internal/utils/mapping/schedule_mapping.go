package mapping

import (
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	"github.com/Chrisphine10/intellicash-core/internal/models"
)

// ToModelScheduleEntry converts a domain ScheduleEntry to a model ScheduleEntry
func ToModelScheduleEntry(d domain.ScheduleEntry) models.ScheduleEntry {
	return models.ScheduleEntry{
		EntryID:              d.EntryID,
		LoanID:               d.LoanID,
		Sequence:             d.Sequence,
		DueDate:              d.DueDate,
		PrincipalDueAmount:   d.PrincipalDue.Amount,
		InterestDueAmount:    d.InterestDue.Amount,
		PenaltyDueAmount:     d.PenaltyDue.Amount,
		AmountToPay:          d.AmountToPay.Amount,
		RunningBalanceAmount: d.RunningBalance.Amount,
		CurrencyCode:         d.AmountToPay.CurrencyCode,
		PenaltyRate:          d.PenaltyRate,
		Status:               string(d.Status),
		PaidDate:             d.PaidDate,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainScheduleEntry converts a model ScheduleEntry to a domain ScheduleEntry
func ToDomainScheduleEntry(m models.ScheduleEntry) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		EntryID:        m.EntryID,
		LoanID:         m.LoanID,
		Sequence:       m.Sequence,
		DueDate:        m.DueDate,
		PrincipalDue:   domain.NewMoney(m.PrincipalDueAmount, m.CurrencyCode),
		InterestDue:    domain.NewMoney(m.InterestDueAmount, m.CurrencyCode),
		PenaltyDue:     domain.NewMoney(m.PenaltyDueAmount, m.CurrencyCode),
		AmountToPay:    domain.NewMoney(m.AmountToPay, m.CurrencyCode),
		RunningBalance: domain.NewMoney(m.RunningBalanceAmount, m.CurrencyCode),
		PenaltyRate:    m.PenaltyRate,
		Status:         domain.EntryStatus(m.Status),
		PaidDate:       m.PaidDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainScheduleEntrySlice converts a slice of model entries to domain entries
func ToDomainScheduleEntrySlice(ms []models.ScheduleEntry) []domain.ScheduleEntry {
	ds := make([]domain.ScheduleEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainScheduleEntry(m)
	}
	return ds
}
