package repositories

// RepositoryProvider bundles the repository facades for injection into the
// service container.
type RepositoryProvider struct {
	LoanRepo      LoanRepositoryFacade
	ScheduleRepo  ScheduleRepositoryFacade
	LedgerRepo    LedgerRepositoryFacade
	AccountRepo   AccountRepositoryFacade
	GuarantorRepo GuarantorRepositoryFacade
	VslaRepo      VslaRepositoryFacade
}
