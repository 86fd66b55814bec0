package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// balanceService is the read-side engine deriving balances from the ledger
// and the schedule. It never stores a balance: every figure is recomputed
// from cleared entries (and active holds) on each call.
type balanceService struct {
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	scheduleRepo  portsrepo.ScheduleRepositoryFacade
	loanRepo      portsrepo.LoanRepositoryFacade
	guarantorRepo portsrepo.GuarantorRepositoryFacade
	clock         portssvc.Clock
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	loanRepo portsrepo.LoanRepositoryFacade,
	guarantorRepo portsrepo.GuarantorRepositoryFacade,
	clock portssvc.Clock,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
		scheduleRepo:  scheduleRepo,
		loanRepo:      loanRepo,
		guarantorRepo: guarantorRepo,
		clock:         clock,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// AvailableBalance is cleared credits minus cleared debits minus active
// guarantor holds. Holds are always subtracted at their current state; the
// asOf bound applies to the cleared-entry sum only.
func (s *balanceService) AvailableBalance(ctx context.Context, accountID string, asOf *time.Time) (domain.Money, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	cleared, err := s.ledgerRepo.SumClearedByAccount(ctx, accountID, asOf)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to sum cleared entries for account %s: %w", accountID, err)
	}
	held, err := s.guarantorRepo.SumActiveHoldsByAccount(ctx, accountID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to sum active holds for account %s: %w", accountID, err)
	}

	return domain.NewMoney(cleared-held, account.CurrencyCode), nil
}

// LoanOutstandingBalance derives the outstanding amount from the schedule:
// the sum of amount_to_pay across pending entries. The schedule, not the
// ledger, is the canonical source for what a borrower still owes.
func (s *balanceService) LoanOutstandingBalance(ctx context.Context, loanID string) (domain.Money, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	currency := loan.Principal.CurrencyCode
	if loan.Status == domain.LoanPending || loan.IsTerminal() {
		return domain.ZeroMoney(currency), nil
	}

	schedule, err := s.scheduleRepo.FindScheduleByLoanID(ctx, loanID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to find schedule for loan %s: %w", loanID, err)
	}
	return schedule.PendingAmountTotal(currency), nil
}

// AccruedInterestForPeriod walks the account's cleared history between the
// two dates and accrues simple interest on the running balance of each
// interval between transaction change points, day-weighted on an ACT/365
// basis. The accrual accumulates as an exact decimal and rounds to minor
// units exactly once at the end.
func (s *balanceService) AccruedInterestForPeriod(ctx context.Context, accountID string, ratePercent decimal.Decimal, startDate, endDate time.Time) (domain.Money, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if endDate.Before(startDate) {
		return domain.Money{}, fmt.Errorf("%w: end date precedes start date", apperrors.ErrInvalidArgument)
	}
	if ratePercent.IsNegative() {
		return domain.Money{}, fmt.Errorf("%w: rate cannot be negative", apperrors.ErrInvalidArgument)
	}

	opening, err := s.ledgerRepo.SumClearedByAccount(ctx, accountID, &startDate)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to sum opening balance for account %s: %w", accountID, err)
	}
	entries, err := s.ledgerRepo.ListClearedByAccountBetween(ctx, accountID, startDate, endDate)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to list cleared entries for account %s: %w", accountID, err)
	}

	dailyRate := ratePercent.Div(oneHundredDecimal).Div(daysPerYear)
	accrued := decimal.Zero
	balance := opening
	cursor := startDate

	accrue := func(until time.Time) {
		days := daysBetween(cursor, until)
		if days > 0 && balance > 0 {
			accrued = accrued.Add(decimal.NewFromInt(balance).Mul(dailyRate).Mul(decimal.NewFromInt(days)))
		}
		cursor = until
	}

	for i := range entries {
		accrue(entries[i].Date)
		balance += entries[i].SignedAmount().Amount
	}
	accrue(endDate)

	return domain.NewMoney(accrued.Round(0).IntPart(), account.CurrencyCode), nil
}

// PostSavingsInterest computes the accrual for the window and appends it as a
// cleared interest-posting credit dated at the window's end. A zero accrual
// posts nothing.
func (s *balanceService) PostSavingsInterest(ctx context.Context, accountID string, ratePercent decimal.Decimal, startDate, endDate time.Time, actorID string) (domain.Money, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	interest, err := s.AccruedInterestForPeriod(ctx, accountID, ratePercent, startDate, endDate)
	if err != nil {
		return domain.Money{}, err
	}
	if !interest.IsPositive() {
		return interest, nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := s.clock.Now()
	entry := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		AccountID: account.AccountID,
		MemberID:  account.MemberID,
		Date:      endDate,
		Amount:    interest,
		Direction: domain.Credit,
		Status:    domain.LedgerCleared,
		Type:      domain.TypeInterestPosting,
		Notes:     fmt.Sprintf("interest %s%% %s to %s", ratePercent, startDate.Format("2006-01-02"), endDate.Format("2006-01-02")),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to post savings interest", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return domain.Money{}, fmt.Errorf("failed to post savings interest for account %s: %w", accountID, err)
	}

	logger.Info("Savings interest posted",
		slog.String("account_id", accountID),
		slog.String("entry_id", entry.EntryID),
		slog.Int64("amount", interest.Amount),
	)
	return interest, nil
}

var oneHundredDecimal = decimal.NewFromInt(100)

// daysBetween counts whole days from a to b.
func daysBetween(a, b time.Time) int64 {
	return int64(b.Sub(a) / (24 * time.Hour))
}
