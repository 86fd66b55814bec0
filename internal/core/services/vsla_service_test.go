package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type VslaServiceTestSuite struct {
	suite.Suite
	mockVslaRepo   *MockVslaRepository
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.VslaSvcFacade

	now   time.Time
	cycle domain.VslaCycle
}

func (suite *VslaServiceTestSuite) SetupTest() {
	suite.mockVslaRepo = new(MockVslaRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)

	suite.now = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	suite.service = services.NewVslaService(
		suite.mockVslaRepo,
		suite.mockLedgerRepo,
		fixedClock{now: suite.now},
	)

	suite.cycle = domain.VslaCycle{
		CycleID:      "cycle-1",
		Name:         "2025 cycle",
		CurrencyCode: "KES",
		StartDate:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.CycleOpen,
	}
}

func (suite *VslaServiceTestSuite) TestShareoutPool_OpenCycleBoundedAtNow() {
	ctx := context.Background()
	suite.mockVslaRepo.On("FindCycleByID", mock.Anything, "cycle-1").Return(&suite.cycle, nil).Once()

	// An open cycle sums up to today, not its planned end.
	expectedTypes := []domain.LedgerType{domain.TypeContribution, domain.TypePenalty, domain.TypeInterestPosting}
	suite.mockLedgerRepo.On("SumClearedByTypesBetween", mock.Anything, expectedTypes, "KES", suite.cycle.StartDate, suite.now).
		Return(int64(250000), nil).Once()

	pool, err := suite.service.ShareoutPool(ctx, "cycle-1")

	suite.Require().NoError(err)
	suite.Equal(domain.NewMoney(250000, "KES"), pool)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *VslaServiceTestSuite) TestShareoutPool_SharedOutCycleUsesEndDate() {
	ctx := context.Background()
	suite.cycle.Status = domain.CycleSharedOut
	suite.cycle.EndDate = time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	suite.mockVslaRepo.On("FindCycleByID", mock.Anything, "cycle-1").Return(&suite.cycle, nil).Once()

	expectedTypes := []domain.LedgerType{domain.TypeContribution, domain.TypePenalty, domain.TypeInterestPosting}
	suite.mockLedgerRepo.On("SumClearedByTypesBetween", mock.Anything, expectedTypes, "KES", suite.cycle.StartDate, suite.cycle.EndDate).
		Return(int64(480000), nil).Once()

	pool, err := suite.service.ShareoutPool(ctx, "cycle-1")

	suite.Require().NoError(err)
	suite.Equal(int64(480000), pool.Amount)
}

func (suite *VslaServiceTestSuite) TestShareoutPool_OpenCyclePastEndUsesEndDate() {
	ctx := context.Background()
	suite.cycle.EndDate = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	suite.mockVslaRepo.On("FindCycleByID", mock.Anything, "cycle-1").Return(&suite.cycle, nil).Once()

	expectedTypes := []domain.LedgerType{domain.TypeContribution, domain.TypePenalty, domain.TypeInterestPosting}
	suite.mockLedgerRepo.On("SumClearedByTypesBetween", mock.Anything, expectedTypes, "KES", suite.cycle.StartDate, suite.cycle.EndDate).
		Return(int64(100000), nil).Once()

	pool, err := suite.service.ShareoutPool(ctx, "cycle-1")

	suite.Require().NoError(err)
	suite.Equal(int64(100000), pool.Amount)
}

func TestVslaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VslaServiceTestSuite))
}
