package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/amortization"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
	"github.com/google/uuid"
)

var (
	ErrLoanNotPending    = errors.New("loan must be pending to be disbursed")
	ErrLoanNotActive     = errors.New("loan must be active")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrCurrencyConflict  = errors.New("account currency does not match loan currency")
	ErrUnknownTermPeriod = errors.New("unknown term period")
)

// loanService owns the loan lifecycle: creation, disbursement (schedule
// generation), guarantor holds and default marking.
type loanService struct {
	loanRepo      portsrepo.LoanRepositoryFacade
	scheduleRepo  portsrepo.ScheduleRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	guarantorRepo portsrepo.GuarantorRepositoryFacade
	balanceSvc    portssvc.BalanceSvcFacade
	notifier      portssvc.Notifier
	clock         portssvc.Clock
}

// NewLoanService creates a new LoanService.
func NewLoanService(
	loanRepo portsrepo.LoanRepositoryFacade,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	guarantorRepo portsrepo.GuarantorRepositoryFacade,
	balanceSvc portssvc.BalanceSvcFacade,
	notifier portssvc.Notifier,
	clock portssvc.Clock,
) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:      loanRepo,
		scheduleRepo:  scheduleRepo,
		accountRepo:   accountRepo,
		guarantorRepo: guarantorRepo,
		balanceSvc:    balanceSvc,
		notifier:      notifier,
		clock:         clock,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// CreateLoan validates and persists a loan in PENDING status. No schedule
// exists until disbursement.
func (s *loanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actorID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrInvalidArgument)
	}
	if req.TermCount < 1 {
		return nil, fmt.Errorf("%w: term count must be at least 1", apperrors.ErrInvalidArgument)
	}
	if req.TermPeriod.PeriodsPerYear() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTermPeriod, req.TermPeriod)
	}
	switch req.InterestMethod {
	case domain.FlatRate, domain.FixedRate, domain.Mortgage, domain.OneTime, domain.ReducingAmount, domain.Compound:
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedInterestMethod, req.InterestMethod)
	}

	now := s.clock.Now()
	loan := domain.Loan{
		LoanID:         uuid.NewString(),
		BorrowerID:     req.BorrowerID,
		Principal:      domain.NewMoney(req.Principal, req.CurrencyCode),
		InterestRate:   req.InterestRate,
		InterestMethod: req.InterestMethod,
		TermCount:      req.TermCount,
		TermPeriod:     req.TermPeriod,
		PenaltyRate:    req.PenaltyRate,
		Status:         domain.LoanPending,
		TotalPaid:      domain.ZeroMoney(req.CurrencyCode),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		logger.Error("Failed to save loan", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	logger.Info("Loan created", slog.String("loan_id", loan.LoanID), slog.String("borrower_id", loan.BorrowerID))
	return &loan, nil
}

// DisburseLoan generates the repayment schedule, activates the loan and
// appends the disbursement credit ledger entry as one atomic unit.
func (s *loanService) DisburseLoan(ctx context.Context, loanID string, req dto.DisburseLoanRequest, actorID string) (*domain.Schedule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	if loan.Status != domain.LoanPending {
		return nil, fmt.Errorf("%w: status is %s", ErrLoanNotPending, loan.Status)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.CreditAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", req.CreditAccountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, account.AccountID)
	}
	if account.CurrencyCode != loan.Principal.CurrencyCode {
		return nil, fmt.Errorf("%w: account is %s, loan is %s", ErrCurrencyConflict, account.CurrencyCode, loan.Principal.CurrencyCode)
	}

	entries, err := amortization.GenerateSchedule(amortization.Params{
		Principal:   loan.Principal,
		AnnualRate:  loan.InterestRate,
		TermCount:   loan.TermCount,
		TermPeriod:  loan.TermPeriod,
		StartDate:   req.DisbursementDate,
		Method:      loan.InterestMethod,
		PenaltyRate: loan.PenaltyRate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule for loan %s: %w", loanID, err)
	}

	now := s.clock.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
	for i := range entries {
		entries[i].EntryID = uuid.NewString()
		entries[i].LoanID = loan.LoanID
		entries[i].AuditFields = audit
	}

	disbursementDate := req.DisbursementDate
	loan.DisbursementDate = &disbursementDate
	loan.Status = domain.LoanActive
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actorID

	disbursement := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   account.AccountID,
		MemberID:    loan.BorrowerID,
		Date:        req.DisbursementDate,
		Amount:      loan.Principal,
		Direction:   domain.Credit,
		Status:      domain.LedgerCleared,
		Type:        domain.TypeLoanDisbursement,
		LoanID:      &loan.LoanID,
		AuditFields: audit,
	}

	if err := s.loanRepo.DisburseLoan(ctx, *loan, entries, disbursement); err != nil {
		logger.Error("Failed to disburse loan", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to disburse loan %s: %w", loanID, err)
	}

	logger.Info("Loan disbursed",
		slog.String("loan_id", loanID),
		slog.Int("entries", len(entries)),
	)
	s.notifier.LoanDisbursed(ctx, *loan)

	return &domain.Schedule{LoanID: loan.LoanID, Entries: entries}, nil
}

// GetLoanByID retrieves a loan.
func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	return loan, nil
}

// GetSchedule retrieves a loan's repayment schedule.
func (s *loanService) GetSchedule(ctx context.Context, loanID string) (*domain.Schedule, error) {
	schedule, err := s.scheduleRepo.FindScheduleByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule for loan %s: %w", loanID, err)
	}
	return schedule, nil
}

// CreateGuarantorHold reserves funds in a guarantor's account behind a loan.
// The available balance is validated up front; the repository re-verifies it
// inside the per-account lock before inserting.
func (s *loanService) CreateGuarantorHold(ctx context.Context, req dto.CreateGuarantorHoldRequest, actorID string) (*domain.GuarantorHold, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, req.LoanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", req.LoanID, err)
	}
	if loan.IsTerminal() {
		return nil, fmt.Errorf("%w: loan %s is %s", apperrors.ErrConflict, loan.LoanID, loan.Status)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountID, err)
	}
	if account.CurrencyCode != loan.Principal.CurrencyCode {
		return nil, fmt.Errorf("%w: account is %s, loan is %s", ErrCurrencyConflict, account.CurrencyCode, loan.Principal.CurrencyCode)
	}

	amount := domain.NewMoney(req.Amount, account.CurrencyCode)
	available, err := s.balanceSvc.AvailableBalance(ctx, req.AccountID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute available balance for account %s: %w", req.AccountID, err)
	}
	if cmp, err := available.Cmp(amount); err != nil {
		return nil, err
	} else if cmp < 0 {
		return nil, fmt.Errorf("%w: available %s, hold %s", apperrors.ErrInsufficientFunds, available, amount)
	}

	now := s.clock.Now()
	hold := domain.GuarantorHold{
		HoldID:            uuid.NewString(),
		LoanID:            req.LoanID,
		GuarantorMemberID: req.GuarantorMemberID,
		AccountID:         req.AccountID,
		Amount:            amount,
		Status:            domain.HoldActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.guarantorRepo.SaveHold(ctx, hold); err != nil {
		logger.Error("Failed to save guarantor hold", slog.String("loan_id", req.LoanID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save guarantor hold: %w", err)
	}

	logger.Info("Guarantor hold created",
		slog.String("hold_id", hold.HoldID),
		slog.String("loan_id", hold.LoanID),
		slog.String("account_id", hold.AccountID),
	)
	return &hold, nil
}

// MarkDefaulted moves an active loan to DEFAULTED and releases the guarantor
// holds backing it.
func (s *loanService) MarkDefaulted(ctx context.Context, loanID string, actorID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	if loan.Status != domain.LoanActive {
		return nil, fmt.Errorf("%w: status is %s", ErrLoanNotActive, loan.Status)
	}

	loan.Status = domain.LoanDefaulted
	loan.LastUpdatedAt = s.clock.Now()
	loan.LastUpdatedBy = actorID

	if err := s.loanRepo.SaveLoan(ctx, *loan); err != nil {
		return nil, fmt.Errorf("failed to save loan %s: %w", loanID, err)
	}
	if err := s.guarantorRepo.ReleaseHoldsByLoan(ctx, loanID, actorID); err != nil {
		// Holds left behind would keep blocking guarantor funds; surface it.
		logger.Error("Failed to release guarantor holds after default", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to release guarantor holds for loan %s: %w", loanID, err)
	}

	logger.Info("Loan marked defaulted", slog.String("loan_id", loanID))
	return loan, nil
}
