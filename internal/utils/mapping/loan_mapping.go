package mapping

import (
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	"github.com/Chrisphine10/intellicash-core/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:           d.LoanID,
		BorrowerID:       d.BorrowerID,
		PrincipalAmount:  d.Principal.Amount,
		CurrencyCode:     d.Principal.CurrencyCode,
		InterestRate:     d.InterestRate,
		InterestMethod:   string(d.InterestMethod),
		TermCount:        d.TermCount,
		TermPeriod:       string(d.TermPeriod),
		PenaltyRate:      d.PenaltyRate,
		DisbursementDate: d.DisbursementDate,
		Status:           models.LoanStatus(d.Status),
		TotalPaidAmount:  d.TotalPaid.Amount,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:           m.LoanID,
		BorrowerID:       m.BorrowerID,
		Principal:        domain.NewMoney(m.PrincipalAmount, m.CurrencyCode),
		InterestRate:     m.InterestRate,
		InterestMethod:   domain.InterestMethod(m.InterestMethod),
		TermCount:        m.TermCount,
		TermPeriod:       domain.TermPeriod(m.TermPeriod),
		PenaltyRate:      m.PenaltyRate,
		DisbursementDate: m.DisbursementDate,
		Status:           domain.LoanStatus(m.Status),
		TotalPaid:        domain.NewMoney(m.TotalPaidAmount, m.CurrencyCode),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
