package mapping

import (
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	"github.com/Chrisphine10/intellicash-core/internal/models"
)

// ToModelSavingsAccount converts a domain SavingsAccount to its model
func ToModelSavingsAccount(d domain.SavingsAccount) models.SavingsAccount {
	return models.SavingsAccount{
		AccountID:            d.AccountID,
		MemberID:             d.MemberID,
		CurrencyCode:         d.CurrencyCode,
		MinimumBalanceAmount: d.MinimumBalance.Amount,
		AllowNegative:        d.AllowNegative,
		IsActive:             d.IsActive,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSavingsAccount converts a model SavingsAccount to its domain form
func ToDomainSavingsAccount(m models.SavingsAccount) domain.SavingsAccount {
	return domain.SavingsAccount{
		AccountID:      m.AccountID,
		MemberID:       m.MemberID,
		CurrencyCode:   m.CurrencyCode,
		MinimumBalance: domain.NewMoney(m.MinimumBalanceAmount, m.CurrencyCode),
		AllowNegative:  m.AllowNegative,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelGuarantorHold converts a domain GuarantorHold to its model
func ToModelGuarantorHold(d domain.GuarantorHold) models.GuarantorHold {
	return models.GuarantorHold{
		HoldID:            d.HoldID,
		LoanID:            d.LoanID,
		GuarantorMemberID: d.GuarantorMemberID,
		AccountID:         d.AccountID,
		Amount:            d.Amount.Amount,
		CurrencyCode:      d.Amount.CurrencyCode,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGuarantorHold converts a model GuarantorHold to its domain form
func ToDomainGuarantorHold(m models.GuarantorHold) domain.GuarantorHold {
	return domain.GuarantorHold{
		HoldID:            m.HoldID,
		LoanID:            m.LoanID,
		GuarantorMemberID: m.GuarantorMemberID,
		AccountID:         m.AccountID,
		Amount:            domain.NewMoney(m.Amount, m.CurrencyCode),
		Status:            domain.HoldStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGuarantorHoldSlice converts a slice of model holds to domain holds
func ToDomainGuarantorHoldSlice(ms []models.GuarantorHold) []domain.GuarantorHold {
	ds := make([]domain.GuarantorHold, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGuarantorHold(m)
	}
	return ds
}
