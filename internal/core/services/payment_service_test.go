package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/core/services"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockLoanRepo     *MockLoanRepository
	mockScheduleRepo *MockScheduleRepository
	mockLedgerRepo   *MockLedgerRepository
	mockAccountRepo  *MockAccountRepository
	mockBalanceSvc   *MockBalanceService
	notifier         *recordingNotifier
	service          portssvc.PaymentSvcFacade

	now              time.Time
	disbursementDate time.Time
	actorID          string
	loan             domain.Loan
	schedule         domain.Schedule
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockScheduleRepo = new(MockScheduleRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockBalanceSvc = new(MockBalanceService)
	suite.notifier = &recordingNotifier{}

	suite.now = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	suite.disbursementDate = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	suite.actorID = "teller-1"

	suite.service = services.NewPaymentService(
		suite.mockLoanRepo,
		suite.mockScheduleRepo,
		suite.mockLedgerRepo,
		suite.mockAccountRepo,
		suite.mockBalanceSvc,
		services.NewZeroPenaltyStrategy(),
		suite.notifier,
		fixedClock{now: suite.now},
	)

	// Active flat-rate loan: 120000 at 12% over 3 monthly installments.
	// Plan per entry: 40000 principal + 4800 interest.
	suite.loan = domain.Loan{
		LoanID:           "loan-1",
		BorrowerID:       "member-1",
		Principal:        domain.NewMoney(120000, "KES"),
		InterestRate:     decimal.NewFromInt(12),
		InterestMethod:   domain.FlatRate,
		TermCount:        3,
		TermPeriod:       domain.TermMonths,
		DisbursementDate: &suite.disbursementDate,
		Status:           domain.LoanActive,
		TotalPaid:        domain.ZeroMoney("KES"),
	}

	entries := make([]domain.ScheduleEntry, 3)
	balance := int64(120000)
	for i := range entries {
		balance -= 40000
		entries[i] = domain.ScheduleEntry{
			EntryID:        []string{"entry-1", "entry-2", "entry-3"}[i],
			LoanID:         "loan-1",
			Sequence:       i + 1,
			DueDate:        suite.disbursementDate.AddDate(0, i+1, 0),
			PrincipalDue:   domain.NewMoney(40000, "KES"),
			InterestDue:    domain.NewMoney(4800, "KES"),
			PenaltyDue:     domain.ZeroMoney("KES"),
			AmountToPay:    domain.NewMoney(44800, "KES"),
			RunningBalance: domain.NewMoney(balance, "KES"),
			Status:         domain.EntryPending,
		}
	}
	suite.schedule = domain.Schedule{LoanID: "loan-1", Entries: entries}
}

func (suite *PaymentServiceTestSuite) markPaid(idx int, principal int64) {
	e := &suite.schedule.Entries[idx]
	e.PrincipalDue = domain.NewMoney(principal, "KES")
	e.Status = domain.EntryPaid
	paid := e.DueDate
	e.PaidDate = &paid
}

func (suite *PaymentServiceTestSuite) expectLoanAndSchedule() {
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&suite.loan, nil).Once()
	suite.mockScheduleRepo.On("FindScheduleByLoanID", mock.Anything, "loan-1").Return(&suite.schedule, nil).Once()
}

func (suite *PaymentServiceTestSuite) capturePaymentResult(captured *domain.PaymentApplication) {
	suite.mockLoanRepo.On("SavePaymentResult", mock.Anything, mock.AnythingOfType("domain.PaymentApplication")).
		Run(func(args mock.Arguments) {
			*captured = args.Get(1).(domain.PaymentApplication)
		}).
		Return(nil).Once()
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_OnPlan() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	var app domain.PaymentApplication
	suite.capturePaymentResult(&app)

	paidDate := suite.disbursementDate.AddDate(0, 1, 0)
	result, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:      paidDate,
		PaidPrincipal: 40000,
		PaidInterest:  4800,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)

	// Targets the earliest pending entry and freezes the actuals into it.
	suite.Equal("entry-1", app.PaidEntry.EntryID)
	suite.Equal(domain.EntryPaid, app.PaidEntry.Status)
	suite.Equal(int64(40000), app.PaidEntry.PrincipalDue.Amount)
	suite.Equal(int64(4800), app.PaidEntry.InterestDue.Amount)
	suite.Equal(int64(80000), app.PaidEntry.RunningBalance.Amount)
	suite.Require().NotNil(app.PaidEntry.PaidDate)
	suite.Equal(paidDate, *app.PaidEntry.PaidDate)

	// An on-plan payment keeps the tail untouched.
	suite.False(app.ReplaceTailAfter)
	suite.Empty(app.RegeneratedTail)
	suite.False(app.ReleaseHolds)
	suite.Nil(app.LedgerEntry)

	suite.Equal(int64(40000), app.Loan.TotalPaid.Amount)
	suite.Equal(domain.LoanActive, app.Loan.Status)
	suite.Nil(result.LedgerEntryID)
	suite.Len(suite.notifier.payments, 1)

	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_OffPlanRegeneratesTail() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	var app domain.PaymentApplication
	suite.capturePaymentResult(&app)

	result, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:      suite.disbursementDate.AddDate(0, 1, 0),
		PaidPrincipal: 60000,
		PaidInterest:  4800,
	}, suite.actorID)

	suite.Require().NoError(err)

	// 60000 of 120000 paid: the remaining 60000 re-amortizes over the 2
	// remaining periods under the loan's own flat-rate method.
	suite.True(app.ReplaceTailAfter)
	suite.Require().Len(app.RegeneratedTail, 2)
	suite.Equal(int64(60000), app.PaidEntry.RunningBalance.Amount)

	first := app.RegeneratedTail[0]
	suite.Equal(2, first.Sequence)
	suite.Equal("loan-1", first.LoanID)
	suite.NotEmpty(first.EntryID)
	suite.Equal(int64(30000), first.PrincipalDue.Amount)
	suite.Equal(int64(3600), first.InterestDue.Amount) // 60000 * 12% / 2
	suite.Equal(suite.schedule.Entries[0].DueDate.AddDate(0, 1, 0), first.DueDate)

	second := app.RegeneratedTail[1]
	suite.Equal(3, second.Sequence)
	suite.Equal(int64(30000), second.PrincipalDue.Amount)
	suite.True(second.RunningBalance.IsZero())

	suite.Equal(domain.LoanActive, app.Loan.Status)
	suite.Len(result.NewEntries, 2)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_OffPlanMustTargetEarliestPending() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	// 50000 against entry-2 while entry-1 is still pending: regenerating the
	// tail behind entry-1 would double-count its 40000 of principal.
	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:              suite.disbursementDate.AddDate(0, 1, 0),
		PaidPrincipal:         50000,
		PaidInterest:          4800,
		TargetScheduleEntryID: "entry-2",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrScheduleMismatch)
	suite.Contains(err.Error(), "entry-1")
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SavePaymentResult", mock.Anything, mock.Anything)

	// A full payoff aimed past pending entries is off-plan too.
	suite.expectLoanAndSchedule()
	_, err = suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:              suite.disbursementDate.AddDate(0, 1, 0),
		PaidPrincipal:         120000,
		TargetScheduleEntryID: "entry-3",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrScheduleMismatch)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_OnPlanLaterEntryKeepsTail() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	var app domain.PaymentApplication
	suite.capturePaymentResult(&app)

	// Paying entry-2 exactly as planned does not reshape the plan, so the
	// earlier pending entry stays untouched.
	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:              suite.disbursementDate.AddDate(0, 2, 0),
		PaidPrincipal:         40000,
		PaidInterest:          4800,
		TargetScheduleEntryID: "entry-2",
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("entry-2", app.PaidEntry.EntryID)
	suite.False(app.ReplaceTailAfter)
	suite.Empty(app.RegeneratedTail)
	suite.Equal(int64(40000), app.Loan.TotalPaid.Amount)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_EarlyPayoffReleasesHolds() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	var app domain.PaymentApplication
	suite.capturePaymentResult(&app)

	result, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:      suite.disbursementDate.AddDate(0, 1, 0),
		PaidPrincipal: 120000,
		PaidInterest:  4800,
	}, suite.actorID)

	suite.Require().NoError(err)

	// Full payoff discards the pending tail and releases guarantor holds.
	suite.True(app.ReplaceTailAfter)
	suite.Empty(app.RegeneratedTail)
	suite.True(app.ReleaseHolds)
	suite.Equal(domain.LoanFullyPaid, app.Loan.Status)
	suite.Equal(int64(120000), app.Loan.TotalPaid.Amount)
	suite.True(app.PaidEntry.RunningBalance.IsZero())
	suite.Equal(domain.LoanFullyPaid, result.Loan.Status)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ExplicitTargetAlreadyPaid() {
	ctx := context.Background()
	suite.markPaid(0, 40000)
	suite.expectLoanAndSchedule()

	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:              suite.now,
		PaidPrincipal:         40000,
		TargetScheduleEntryID: "entry-1",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SavePaymentResult", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_NoPendingEntry() {
	ctx := context.Background()
	suite.markPaid(0, 40000)
	suite.markPaid(1, 40000)
	suite.markPaid(2, 40000)
	suite.expectLoanAndSchedule()

	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:      suite.now,
		PaidPrincipal: 1000,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoPendingEntry)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ScheduleMismatch() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	foreign := domain.ScheduleEntry{EntryID: "entry-x", LoanID: "loan-2"}
	suite.mockScheduleRepo.On("FindEntryByID", mock.Anything, "entry-x").Return(&foreign, nil).Once()

	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:              suite.now,
		PaidPrincipal:         40000,
		TargetScheduleEntryID: "entry-x",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrScheduleMismatch)
	suite.Contains(err.Error(), "loan-2")
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_OverpayBeyondOutstanding() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:      suite.now,
		PaidPrincipal: 130000,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidArgument)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_UnderpaidFinalInstallment() {
	ctx := context.Background()
	suite.markPaid(0, 40000)
	suite.markPaid(1, 40000)
	suite.expectLoanAndSchedule()

	// 30000 against the final 40000 installment: 10000 of principal would be
	// left with no periods to carry it.
	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:      suite.now,
		PaidPrincipal: 30000,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrScheduleExhausted)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_LoanNotActive() {
	ctx := context.Background()
	suite.loan.Status = domain.LoanPending
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&suite.loan, nil).Once()

	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:      suite.now,
		PaidPrincipal: 40000,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLoanNotActive)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_PaidDateBeforeDisbursement() {
	ctx := context.Background()
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&suite.loan, nil).Once()

	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:      suite.disbursementDate.AddDate(0, 0, -1),
		PaidPrincipal: 40000,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidArgument)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_FundingAccountDebited() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	account := domain.SavingsAccount{
		AccountID:      "acc-1",
		MemberID:       "member-1",
		CurrencyCode:   "KES",
		MinimumBalance: domain.ZeroMoney("KES"),
		IsActive:       true,
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&account, nil).Once()
	suite.mockBalanceSvc.On("AvailableBalance", mock.Anything, "acc-1", (*time.Time)(nil)).
		Return(domain.NewMoney(100000, "KES"), nil).Once()

	var app domain.PaymentApplication
	suite.capturePaymentResult(&app)

	result, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:         suite.disbursementDate.AddDate(0, 1, 0),
		PaidPrincipal:    40000,
		PaidInterest:     4800,
		FundingAccountID: "acc-1",
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(app.LedgerEntry)

	leg := app.LedgerEntry
	suite.Equal("acc-1", leg.AccountID)
	suite.Equal(domain.Debit, leg.Direction)
	suite.Equal(domain.LedgerCleared, leg.Status)
	suite.Equal(domain.TypeLoanRepayment, leg.Type)
	suite.Equal(int64(44800), leg.Amount.Amount)
	suite.Require().NotNil(leg.LoanID)
	suite.Equal("loan-1", *leg.LoanID)
	suite.Require().NotNil(leg.ScheduleEntryID)
	suite.Equal("entry-1", *leg.ScheduleEntryID)

	suite.Require().NotNil(result.LedgerEntryID)
	suite.Equal(leg.EntryID, *result.LedgerEntryID)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_FundingAccountInsufficient() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	account := domain.SavingsAccount{
		AccountID:      "acc-1",
		MemberID:       "member-1",
		CurrencyCode:   "KES",
		MinimumBalance: domain.ZeroMoney("KES"),
		IsActive:       true,
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&account, nil).Once()
	suite.mockBalanceSvc.On("AvailableBalance", mock.Anything, "acc-1", (*time.Time)(nil)).
		Return(domain.NewMoney(40000, "KES"), nil).Once()

	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:         suite.disbursementDate.AddDate(0, 1, 0),
		PaidPrincipal:    40000,
		PaidInterest:     4800,
		FundingAccountID: "acc-1",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SavePaymentResult", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_FundingAccountBelowMinimum() {
	ctx := context.Background()
	suite.expectLoanAndSchedule()

	account := domain.SavingsAccount{
		AccountID:      "acc-1",
		MemberID:       "member-1",
		CurrencyCode:   "KES",
		MinimumBalance: domain.NewMoney(10000, "KES"),
		IsActive:       true,
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&account, nil).Once()
	// 50000 - 44800 = 5200 covers the debit but sits below the 10000 minimum.
	suite.mockBalanceSvc.On("AvailableBalance", mock.Anything, "acc-1", (*time.Time)(nil)).
		Return(domain.NewMoney(50000, "KES"), nil).Once()

	_, err := suite.service.ApplyPayment(ctx, "loan-1", dto.RecordPaymentRequest{
		PaidDate:         suite.disbursementDate.AddDate(0, 1, 0),
		PaidPrincipal:    40000,
		PaidInterest:     4800,
		FundingAccountID: "acc-1",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBelowMinimumBalance)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SavePaymentResult", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_LedgerLeg() {
	ctx := context.Background()
	suite.markPaid(0, 40000)
	suite.loan.TotalPaid = domain.NewMoney(40000, "KES")

	entryID := "entry-1"
	loanID := "loan-1"
	ledgerEntry := domain.LedgerEntry{
		EntryID:         "ledger-1",
		Status:          domain.LedgerCleared,
		Type:            domain.TypeLoanRepayment,
		LoanID:          &loanID,
		ScheduleEntryID: &entryID,
	}
	suite.mockLedgerRepo.On("FindEntryByID", mock.Anything, "ledger-1").Return(&ledgerEntry, nil).Once()
	suite.mockScheduleRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(&suite.schedule.Entries[0], nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&suite.loan, nil).Once()
	suite.mockScheduleRepo.On("FindScheduleByLoanID", mock.Anything, "loan-1").Return(&suite.schedule, nil).Once()

	var rev domain.PaymentReversal
	suite.mockLoanRepo.On("SavePaymentReversal", mock.Anything, mock.AnythingOfType("domain.PaymentReversal")).
		Run(func(args mock.Arguments) {
			rev = args.Get(1).(domain.PaymentReversal)
		}).
		Return(nil).Once()

	err := suite.service.DeletePayment(ctx, "ledger-1", suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("ledger-1", rev.LedgerEntryID)
	suite.Equal("entry-1", rev.ReopenedEntry.EntryID)
	suite.Equal(domain.EntryPending, rev.ReopenedEntry.Status)
	suite.Nil(rev.ReopenedEntry.PaidDate)
	// The frozen amounts stay as the entry's new plan.
	suite.Equal(int64(40000), rev.ReopenedEntry.PrincipalDue.Amount)
	suite.Equal(int64(0), rev.Loan.TotalPaid.Amount)
	suite.Equal(domain.LoanActive, rev.Loan.Status)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_CashPayment() {
	ctx := context.Background()
	suite.markPaid(0, 40000)
	suite.loan.TotalPaid = domain.NewMoney(40000, "KES")

	// No ledger leg exists: the id names the schedule entry directly.
	suite.mockLedgerRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockScheduleRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(&suite.schedule.Entries[0], nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&suite.loan, nil).Once()
	suite.mockScheduleRepo.On("FindScheduleByLoanID", mock.Anything, "loan-1").Return(&suite.schedule, nil).Once()

	var rev domain.PaymentReversal
	suite.mockLoanRepo.On("SavePaymentReversal", mock.Anything, mock.AnythingOfType("domain.PaymentReversal")).
		Run(func(args mock.Arguments) {
			rev = args.Get(1).(domain.PaymentReversal)
		}).
		Return(nil).Once()

	err := suite.service.DeletePayment(ctx, "entry-1", suite.actorID)

	suite.Require().NoError(err)
	suite.Empty(rev.LedgerEntryID)
	suite.Equal(domain.EntryPending, rev.ReopenedEntry.Status)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_FullyPaidRollsBackToActive() {
	ctx := context.Background()
	suite.markPaid(0, 40000)
	suite.markPaid(1, 40000)
	suite.markPaid(2, 40000)
	suite.loan.Status = domain.LoanFullyPaid
	suite.loan.TotalPaid = domain.NewMoney(120000, "KES")

	suite.mockLedgerRepo.On("FindEntryByID", mock.Anything, "entry-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockScheduleRepo.On("FindEntryByID", mock.Anything, "entry-3").Return(&suite.schedule.Entries[2], nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&suite.loan, nil).Once()
	suite.mockScheduleRepo.On("FindScheduleByLoanID", mock.Anything, "loan-1").Return(&suite.schedule, nil).Once()

	var rev domain.PaymentReversal
	suite.mockLoanRepo.On("SavePaymentReversal", mock.Anything, mock.AnythingOfType("domain.PaymentReversal")).
		Run(func(args mock.Arguments) {
			rev = args.Get(1).(domain.PaymentReversal)
		}).
		Return(nil).Once()

	err := suite.service.DeletePayment(ctx, "entry-3", suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanActive, rev.Loan.Status)
	suite.Equal(int64(80000), rev.Loan.TotalPaid.Amount)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_EntryNotPaid() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockScheduleRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(&suite.schedule.Entries[0], nil).Once()

	err := suite.service.DeletePayment(ctx, "entry-1", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SavePaymentReversal", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_LedgerEntryNotRepayment() {
	ctx := context.Background()

	deposit := domain.LedgerEntry{
		EntryID: "ledger-2",
		Status:  domain.LedgerCleared,
		Type:    domain.TypeDeposit,
	}
	suite.mockLedgerRepo.On("FindEntryByID", mock.Anything, "ledger-2").Return(&deposit, nil).Once()

	err := suite.service.DeletePayment(ctx, "ledger-2", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidArgument)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
