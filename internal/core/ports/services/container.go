package services

// ServiceContainer bundles the service facades handed to the handler layer.
type ServiceContainer struct {
	Loan    LoanSvcFacade
	Payment PaymentSvcFacade
	Ledger  LedgerSvcFacade
	Balance BalanceSvcFacade
	Vsla    VslaSvcFacade
}
