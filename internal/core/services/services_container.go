package services

import (
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	clock := NewRealClock()
	notifier := NewLoggingNotifier()

	var penalty portssvc.PenaltyStrategy = NewZeroPenaltyStrategy()
	if cfg.EnableLatePenalties {
		penalty = NewFlatOverduePenaltyStrategy()
	}

	// Balance engine first since loan and payment services read through it.
	container.Balance = NewBalanceService(
		repos.LedgerRepo,
		repos.AccountRepo,
		repos.ScheduleRepo,
		repos.LoanRepo,
		repos.GuarantorRepo,
		clock,
	)

	container.Loan = NewLoanService(
		repos.LoanRepo,
		repos.ScheduleRepo,
		repos.AccountRepo,
		repos.GuarantorRepo,
		container.Balance,
		notifier,
		clock,
	)
	container.Payment = NewPaymentService(
		repos.LoanRepo,
		repos.ScheduleRepo,
		repos.LedgerRepo,
		repos.AccountRepo,
		container.Balance,
		penalty,
		notifier,
		clock,
	)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo, repos.LoanRepo, clock)
	container.Vsla = NewVslaService(repos.VslaRepo, repos.LedgerRepo, clock)

	return container
}
