package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

var _ portsrepo.LoanRepositoryFacade = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) DisburseLoan(ctx context.Context, loan domain.Loan, entries []domain.ScheduleEntry, disbursement domain.LedgerEntry) error {
	args := m.Called(ctx, loan, entries, disbursement)
	return args.Error(0)
}

func (m *MockLoanRepository) SavePaymentResult(ctx context.Context, app domain.PaymentApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockLoanRepository) SavePaymentReversal(ctx context.Context, rev domain.PaymentReversal) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

// --- Mock ScheduleRepository ---
type MockScheduleRepository struct {
	mock.Mock
}

var _ portsrepo.ScheduleRepositoryFacade = (*MockScheduleRepository)(nil)

func (m *MockScheduleRepository) FindScheduleByLoanID(ctx context.Context, loanID string) (*domain.Schedule, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.ScheduleEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleEntry), args.Error(1)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveTransferPair(ctx context.Context, debit domain.LedgerEntry, credit domain.LedgerEntry) error {
	args := m.Called(ctx, debit, credit)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ClearEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) RejectEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CancelEntry(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumClearedByAccount(ctx context.Context, accountID string, asOf *time.Time) (int64, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ListClearedByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumClearedByTypesBetween(ctx context.Context, types []domain.LedgerType, currencyCode string, from, to time.Time) (int64, error) {
	args := m.Called(ctx, types, currencyCode, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedToken, args.Error(2)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.SavingsAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.SavingsAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock GuarantorRepository ---
type MockGuarantorRepository struct {
	mock.Mock
}

var _ portsrepo.GuarantorRepositoryFacade = (*MockGuarantorRepository)(nil)

func (m *MockGuarantorRepository) SaveHold(ctx context.Context, hold domain.GuarantorHold) error {
	args := m.Called(ctx, hold)
	return args.Error(0)
}

func (m *MockGuarantorRepository) SumActiveHoldsByAccount(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGuarantorRepository) ListActiveHoldsByLoan(ctx context.Context, loanID string) ([]domain.GuarantorHold, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuarantorHold), args.Error(1)
}

func (m *MockGuarantorRepository) ReleaseHoldsByLoan(ctx context.Context, loanID string, actorID string) error {
	args := m.Called(ctx, loanID, actorID)
	return args.Error(0)
}

// --- Mock VslaRepository ---
type MockVslaRepository struct {
	mock.Mock
}

var _ portsrepo.VslaRepositoryFacade = (*MockVslaRepository)(nil)

func (m *MockVslaRepository) FindCycleByID(ctx context.Context, cycleID string) (*domain.VslaCycle, error) {
	args := m.Called(ctx, cycleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VslaCycle), args.Error(1)
}

func (m *MockVslaRepository) SaveCycle(ctx context.Context, cycle domain.VslaCycle) error {
	args := m.Called(ctx, cycle)
	return args.Error(0)
}

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) AvailableBalance(ctx context.Context, accountID string, asOf *time.Time) (domain.Money, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockBalanceService) LoanOutstandingBalance(ctx context.Context, loanID string) (domain.Money, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockBalanceService) AccruedInterestForPeriod(ctx context.Context, accountID string, ratePercent decimal.Decimal, startDate, endDate time.Time) (domain.Money, error) {
	args := m.Called(ctx, accountID, ratePercent, startDate, endDate)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockBalanceService) PostSavingsInterest(ctx context.Context, accountID string, ratePercent decimal.Decimal, startDate, endDate time.Time, actorID string) (domain.Money, error) {
	args := m.Called(ctx, accountID, ratePercent, startDate, endDate, actorID)
	return args.Get(0).(domain.Money), args.Error(1)
}

// --- Test doubles for clock and notifier ---

// fixedClock pins the service's notion of now.
type fixedClock struct {
	now time.Time
}

var _ portssvc.Clock = fixedClock{}

func (c fixedClock) Now() time.Time { return c.now }

// recordingNotifier captures dispatched events without side effects. Safe for
// concurrent callers.
type recordingNotifier struct {
	mu       sync.Mutex
	payments []domain.PaymentResult
	loans    []domain.Loan
}

var _ portssvc.Notifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) PaymentRecorded(ctx context.Context, result domain.PaymentResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payments = append(n.payments, result)
}

func (n *recordingNotifier) LoanDisbursed(ctx context.Context, loan domain.Loan) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loans = append(n.loans, loan)
}
