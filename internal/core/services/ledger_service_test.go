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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	mockLoanRepo    *MockLoanRepository
	service         portssvc.LedgerSvcFacade

	now     time.Time
	actorID string
	account domain.SavingsAccount
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLoanRepo = new(MockLoanRepository)

	suite.now = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	suite.actorID = "teller-1"

	suite.service = services.NewLedgerService(
		suite.mockLedgerRepo,
		suite.mockAccountRepo,
		suite.mockLoanRepo,
		fixedClock{now: suite.now},
	)

	suite.account = domain.SavingsAccount{
		AccountID:    "acc-1",
		MemberID:     "member-1",
		CurrencyCode: "KES",
		IsActive:     true,
	}
}

func (suite *LedgerServiceTestSuite) TestAppend_PendingByDefault() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()

	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.LedgerEntry)
		}).Return(nil).Once()

	entry, err := suite.service.Append(ctx, dto.AppendLedgerEntryRequest{
		AccountID: "acc-1",
		MemberID:  "member-1",
		Date:      suite.now,
		Amount:    5000,
		Direction: domain.Credit,
		Type:      domain.TypeDeposit,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.LedgerPending, entry.Status)
	suite.Equal(domain.NewMoney(5000, "KES"), saved.Amount)
	suite.Equal(suite.actorID, saved.CreatedBy)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ClearEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppend_ClearImmediately() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	cleared := domain.LedgerEntry{EntryID: "entry-1", Status: domain.LedgerCleared}
	suite.mockLedgerRepo.On("ClearEntry", mock.Anything, mock.AnythingOfType("string"), suite.actorID).
		Return(&cleared, nil).Once()

	entry, err := suite.service.Append(ctx, dto.AppendLedgerEntryRequest{
		AccountID:        "acc-1",
		MemberID:         "member-1",
		Date:             suite.now,
		Amount:           5000,
		Direction:        domain.Credit,
		Type:             domain.TypeContribution,
		ClearImmediately: true,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.LedgerCleared, entry.Status)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAppend_InactiveAccount() {
	ctx := context.Background()
	suite.account.IsActive = false
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()

	_, err := suite.service.Append(ctx, dto.AppendLedgerEntryRequest{
		AccountID: "acc-1",
		MemberID:  "member-1",
		Date:      suite.now,
		Amount:    5000,
		Direction: domain.Credit,
		Type:      domain.TypeDeposit,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *LedgerServiceTestSuite) TestTransfer_PairedClearedLegs() {
	ctx := context.Background()
	to := domain.SavingsAccount{AccountID: "acc-2", MemberID: "member-2", CurrencyCode: "KES", IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-2").Return(&to, nil).Once()

	var debit, credit domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveTransferPair", mock.Anything,
		mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			debit = args.Get(1).(domain.LedgerEntry)
			credit = args.Get(2).(domain.LedgerEntry)
		}).Return(nil).Once()

	gotDebit, gotCredit, err := suite.service.Transfer(ctx, dto.TransferRequest{
		FromAccountID: "acc-1",
		FromMemberID:  "member-1",
		ToAccountID:   "acc-2",
		ToMemberID:    "member-2",
		Date:          suite.now,
		Amount:        7500,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Debit, debit.Direction)
	suite.Equal(domain.Credit, credit.Direction)
	suite.Equal(domain.LedgerCleared, debit.Status)
	suite.Equal(domain.LedgerCleared, credit.Status)
	suite.Equal(domain.TypeTransfer, debit.Type)
	suite.Require().NotNil(credit.ParentEntryID)
	suite.Equal(debit.EntryID, *credit.ParentEntryID)
	suite.Equal(gotDebit.EntryID, debit.EntryID)
	suite.Equal(gotCredit.EntryID, credit.EntryID)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameAccount() {
	ctx := context.Background()

	_, _, err := suite.service.Transfer(ctx, dto.TransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-1",
		Amount:        7500,
		Date:          suite.now,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidArgument)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_CurrencyMismatch() {
	ctx := context.Background()
	to := domain.SavingsAccount{AccountID: "acc-2", CurrencyCode: "USD", IsActive: true}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-2").Return(&to, nil).Once()

	_, _, err := suite.service.Transfer(ctx, dto.TransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        7500,
		Date:          suite.now,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCurrencyMismatch)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransferPair", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverse_RefusesLoanRepayment() {
	ctx := context.Background()
	loanID := "loan-1"
	entry := domain.LedgerEntry{
		EntryID: "entry-1",
		Status:  domain.LedgerCleared,
		Type:    domain.TypeLoanRepayment,
		LoanID:  &loanID,
	}
	suite.mockLedgerRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(&entry, nil).Once()

	_, err := suite.service.Reverse(ctx, "entry-1", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CancelEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverse_RefusesDisbursementOfActiveLoan() {
	ctx := context.Background()
	loanID := "loan-1"
	entry := domain.LedgerEntry{
		EntryID: "entry-1",
		Status:  domain.LedgerCleared,
		Type:    domain.TypeLoanDisbursement,
		LoanID:  &loanID,
	}
	loan := domain.Loan{LoanID: "loan-1", Status: domain.LoanActive}
	suite.mockLedgerRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(&entry, nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&loan, nil).Once()

	_, err := suite.service.Reverse(ctx, "entry-1", suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestReverse_CancelsPlainEntry() {
	ctx := context.Background()
	entry := domain.LedgerEntry{EntryID: "entry-1", Status: domain.LedgerCleared, Type: domain.TypeDeposit}
	cancelled := entry
	cancelled.Status = domain.LedgerCancelled
	suite.mockLedgerRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(&entry, nil).Once()
	suite.mockLedgerRepo.On("CancelEntry", mock.Anything, "entry-1", suite.actorID).Return(&cancelled, nil).Once()

	got, err := suite.service.Reverse(ctx, "entry-1", suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.LedgerCancelled, got.Status)
}

func (suite *LedgerServiceTestSuite) TestListByAccount_ClampsLimit() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("ListEntriesByAccount", mock.Anything, "acc-1", 100, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	_, _, err := suite.service.ListByAccount(ctx, "acc-1", 5000, nil)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
