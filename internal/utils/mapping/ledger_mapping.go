package mapping

import (
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	"github.com/Chrisphine10/intellicash-core/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		AccountID:       d.AccountID,
		MemberID:        d.MemberID,
		EntryDate:       d.Date,
		Amount:          d.Amount.Amount,
		CurrencyCode:    d.Amount.CurrencyCode,
		Direction:       string(d.Direction),
		Status:          string(d.Status),
		EntryType:       string(d.Type),
		LoanID:          d.LoanID,
		ScheduleEntryID: d.ScheduleEntryID,
		ParentEntryID:   d.ParentEntryID,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		AccountID:       m.AccountID,
		MemberID:        m.MemberID,
		Date:            m.EntryDate,
		Amount:          domain.NewMoney(m.Amount, m.CurrencyCode),
		Direction:       domain.EntryDirection(m.Direction),
		Status:          domain.LedgerStatus(m.Status),
		Type:            domain.LedgerType(m.EntryType),
		LoanID:          m.LoanID,
		ScheduleEntryID: m.ScheduleEntryID,
		ParentEntryID:   m.ParentEntryID,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
