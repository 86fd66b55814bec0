package mapping

import (
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	"github.com/Chrisphine10/intellicash-core/internal/models"
)

// ToModelVslaCycle converts a domain VslaCycle to its model
func ToModelVslaCycle(d domain.VslaCycle) models.VslaCycle {
	return models.VslaCycle{
		CycleID:      d.CycleID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVslaCycle converts a model VslaCycle to its domain form
func ToDomainVslaCycle(m models.VslaCycle) domain.VslaCycle {
	return domain.VslaCycle{
		CycleID:      m.CycleID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Status:       domain.VslaCycleStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
