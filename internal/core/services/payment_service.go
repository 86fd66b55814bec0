package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/amortization"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
	"github.com/google/uuid"
)

// paymentService is the allocation point where an incoming repayment meets
// the schedule: it resolves the target installment, freezes the actuals into
// it, regenerates the pending tail on off-plan amounts and hands the whole
// effect to the repository as one atomic application.
type paymentService struct {
	loanRepo     portsrepo.LoanRepositoryFacade
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	balanceSvc   portssvc.BalanceSvcFacade
	penalty      portssvc.PenaltyStrategy
	notifier     portssvc.Notifier
	clock        portssvc.Clock
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	loanRepo portsrepo.LoanRepositoryFacade,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	balanceSvc portssvc.BalanceSvcFacade,
	penalty portssvc.PenaltyStrategy,
	notifier portssvc.Notifier,
	clock portssvc.Clock,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		loanRepo:     loanRepo,
		scheduleRepo: scheduleRepo,
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		balanceSvc:   balanceSvc,
		penalty:      penalty,
		notifier:     notifier,
		clock:        clock,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// ApplyPayment applies one repayment to a loan.
//
// The entry it lands on freezes the amounts actually paid, not the plan. When
// the paid principal deviates from the planned principal the pending tail is
// regenerated from the remaining principal over the remaining term, using the
// loan's own interest method. The loan's total_paid is recomputed from the
// schedule, never patched incrementally.
func (s *paymentService) ApplyPayment(ctx context.Context, loanID string, req dto.RecordPaymentRequest, actorID string) (*domain.PaymentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PaidPrincipal <= 0 {
		return nil, fmt.Errorf("%w: paid principal must be positive", apperrors.ErrInvalidArgument)
	}
	if req.PaidInterest < 0 || req.PaidPenalty < 0 {
		return nil, fmt.Errorf("%w: paid interest and penalty cannot be negative", apperrors.ErrInvalidArgument)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	if loan.Status != domain.LoanActive {
		return nil, fmt.Errorf("%w: status is %s", ErrLoanNotActive, loan.Status)
	}
	if loan.DisbursementDate != nil && req.PaidDate.Before(*loan.DisbursementDate) {
		return nil, fmt.Errorf("%w: paid date precedes disbursement", apperrors.ErrInvalidArgument)
	}

	schedule, err := s.scheduleRepo.FindScheduleByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule for loan %s: %w", loanID, err)
	}

	target, err := s.resolveTarget(ctx, schedule, req.TargetScheduleEntryID)
	if err != nil {
		return nil, err
	}

	currency := loan.Principal.CurrencyCode
	paidPrincipal := domain.NewMoney(req.PaidPrincipal, currency)
	paidInterest := domain.NewMoney(req.PaidInterest, currency)
	// An explicit penalty amount wins; otherwise the configured strategy
	// assesses what this entry owes at the paid date.
	paidPenalty := domain.NewMoney(req.PaidPenalty, currency)
	if paidPenalty.IsZero() {
		paidPenalty = s.penalty.Assess(*target, req.PaidDate)
	}

	outstandingPrincipal := loan.Principal.MustSub(schedule.PaidPrincipalTotal(currency))
	if cmp, _ := paidPrincipal.Cmp(outstandingPrincipal); cmp > 0 {
		return nil, fmt.Errorf("%w: paid principal %s exceeds outstanding principal %s",
			apperrors.ErrInvalidArgument, paidPrincipal, outstandingPrincipal)
	}

	remaining := outstandingPrincipal.MustSub(paidPrincipal)
	offPlan := paidPrincipal.Amount != target.PrincipalDue.Amount

	// An off-plan amount reshapes the whole remaining plan, so it must land on
	// the earliest pending installment; regenerating the tail behind a skipped
	// pending entry would count that entry's principal twice.
	if offPlan {
		if next := schedule.NextPending(); next != nil && next.EntryID != target.EntryID {
			return nil, fmt.Errorf("%w: off-plan amount must target the earliest pending entry %s",
				apperrors.ErrScheduleMismatch, next.EntryID)
		}
	}

	// An underpaid final installment would leave principal outstanding with no
	// periods left to carry it.
	remainingTerms := schedule.MaxSequence() - target.Sequence
	if remaining.IsPositive() && offPlan && remainingTerms == 0 {
		return nil, fmt.Errorf("%w: %s principal would remain beyond the final installment",
			apperrors.ErrScheduleExhausted, remaining)
	}

	now := s.clock.Now()
	paidDate := req.PaidDate
	paidEntry := *target
	paidEntry.PrincipalDue = paidPrincipal
	paidEntry.InterestDue = paidInterest
	paidEntry.PenaltyDue = paidPenalty
	paidEntry.AmountToPay = paidPrincipal.MustAdd(paidInterest).MustAdd(paidPenalty)
	paidEntry.RunningBalance = remaining
	paidEntry.Status = domain.EntryPaid
	paidEntry.PaidDate = &paidDate
	paidEntry.LastUpdatedAt = now
	paidEntry.LastUpdatedBy = actorID

	newTotalPaid := schedule.PaidPrincipalTotal(currency).MustAdd(paidPrincipal)

	app := domain.PaymentApplication{PaidEntry: paidEntry}

	fullyPaid := newTotalPaid.Amount == loan.Principal.Amount
	switch {
	case fullyPaid:
		// Early payoff discards the rest of the plan.
		app.ReplaceTailAfter = true
		app.ReleaseHolds = true
	case offPlan:
		tail, err := s.regenerateTail(loan, &paidEntry, remaining, remainingTerms, actorID, now)
		if err != nil {
			return nil, err
		}
		app.ReplaceTailAfter = true
		app.RegeneratedTail = tail
	}

	if req.FundingAccountID != "" {
		leg, err := s.buildFundingLeg(ctx, loan, &paidEntry, req.FundingAccountID, actorID, now)
		if err != nil {
			return nil, err
		}
		app.LedgerEntry = leg
	}

	// The repository recomputes totals from the schedule under the loan lock;
	// the figures set here feed the response and notification.
	loan.TotalPaid = newTotalPaid
	if fullyPaid {
		loan.Status = domain.LoanFullyPaid
	}
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actorID
	app.Loan = *loan

	if err := s.loanRepo.SavePaymentResult(ctx, app); err != nil {
		logger.Error("Failed to save payment",
			slog.String("loan_id", loanID),
			slog.String("entry_id", paidEntry.EntryID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to save payment for loan %s: %w", loanID, err)
	}

	result := domain.PaymentResult{
		Loan:       *loan,
		PaidEntry:  paidEntry,
		NewEntries: app.RegeneratedTail,
	}
	if app.LedgerEntry != nil {
		result.LedgerEntryID = &app.LedgerEntry.EntryID
	}

	logger.Info("Payment applied",
		slog.String("loan_id", loanID),
		slog.String("entry_id", paidEntry.EntryID),
		slog.Bool("off_plan", offPlan),
		slog.String("loan_status", string(loan.Status)),
	)
	s.notifier.PaymentRecorded(ctx, result)

	return &result, nil
}

// resolveTarget picks the installment the payment lands on: the explicitly
// requested entry, or the earliest pending one.
func (s *paymentService) resolveTarget(ctx context.Context, schedule *domain.Schedule, targetID string) (*domain.ScheduleEntry, error) {
	if targetID == "" {
		next := schedule.NextPending()
		if next == nil {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNoPendingEntry, schedule.LoanID)
		}
		return next, nil
	}

	target := schedule.FindEntry(targetID)
	if target == nil {
		entry, err := s.scheduleRepo.FindEntryByID(ctx, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to find schedule entry %s: %w", targetID, err)
		}
		return nil, fmt.Errorf("%w: entry %s belongs to loan %s", apperrors.ErrScheduleMismatch, targetID, entry.LoanID)
	}
	if target.Status == domain.EntryPaid {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPaid, targetID)
	}
	return target, nil
}

// regenerateTail recomputes the pending installments after an off-plan
// payment: the remaining principal is re-amortized over the remaining term,
// anchored at the paid entry's due date, under the loan's own method. On an
// early full payoff remaining is zero and the tail is empty.
func (s *paymentService) regenerateTail(loan *domain.Loan, paidEntry *domain.ScheduleEntry, remaining domain.Money, remainingTerms int, actorID string, now time.Time) ([]domain.ScheduleEntry, error) {
	if remaining.IsZero() || remainingTerms == 0 {
		return nil, nil
	}

	entries, err := amortization.GenerateSchedule(amortization.Params{
		Principal:   remaining,
		AnnualRate:  loan.InterestRate,
		TermCount:   remainingTerms,
		TermPeriod:  loan.TermPeriod,
		StartDate:   paidEntry.DueDate,
		Method:      loan.InterestMethod,
		PenaltyRate: loan.PenaltyRate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate schedule tail for loan %s: %w", loan.LoanID, err)
	}

	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
	for i := range entries {
		entries[i].EntryID = uuid.NewString()
		entries[i].LoanID = loan.LoanID
		entries[i].Sequence = paidEntry.Sequence + i + 1
		entries[i].AuditFields = audit
	}
	return entries, nil
}

// buildFundingLeg constructs the cleared debit against the member's savings
// account funding the payment, after an optimistic available-balance check.
// The repository re-verifies under the account lock before committing.
func (s *paymentService) buildFundingLeg(ctx context.Context, loan *domain.Loan, paidEntry *domain.ScheduleEntry, accountID string, actorID string, now time.Time) (*domain.LedgerEntry, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find funding account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, account.AccountID)
	}
	if account.CurrencyCode != loan.Principal.CurrencyCode {
		return nil, fmt.Errorf("%w: account is %s, loan is %s", ErrCurrencyConflict, account.CurrencyCode, loan.Principal.CurrencyCode)
	}

	available, err := s.balanceSvc.AvailableBalance(ctx, accountID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute available balance for account %s: %w", accountID, err)
	}
	floor := available.MustSub(paidEntry.AmountToPay)
	if !account.AllowNegative {
		if floor.IsNegative() {
			return nil, fmt.Errorf("%w: available %s, payment %s", apperrors.ErrInsufficientFunds, available, paidEntry.AmountToPay)
		}
		if cmp, _ := floor.Cmp(account.MinimumBalance); cmp < 0 {
			return nil, fmt.Errorf("%w: balance would drop to %s below minimum %s",
				apperrors.ErrBelowMinimumBalance, floor, account.MinimumBalance)
		}
	}

	return &domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		AccountID:       account.AccountID,
		MemberID:        account.MemberID,
		Date:            *paidEntry.PaidDate,
		Amount:          paidEntry.AmountToPay,
		Direction:       domain.Debit,
		Status:          domain.LedgerCleared,
		Type:            domain.TypeLoanRepayment,
		LoanID:          &loan.LoanID,
		ScheduleEntryID: &paidEntry.EntryID,
		AuditFields:     domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}, nil
}

// DeletePayment is the administrative override reversing a recorded payment.
// The id is the repayment's ledger leg when one exists, or the paid schedule
// entry itself for cash payments. The entry reopens keeping the amounts that
// were actually applied as its new plan; the loan's totals and status are
// recomputed, which may roll FULLY_PAID back to ACTIVE.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryID := paymentID
	ledgerEntryID := ""
	ledgerEntry, err := s.ledgerRepo.FindEntryByID(ctx, paymentID)
	switch {
	case err == nil:
		if ledgerEntry.Type != domain.TypeLoanRepayment || ledgerEntry.ScheduleEntryID == nil {
			return fmt.Errorf("%w: ledger entry %s is not a loan repayment", apperrors.ErrInvalidArgument, paymentID)
		}
		if ledgerEntry.Status != domain.LedgerCleared {
			return fmt.Errorf("%w: ledger entry %s is %s", apperrors.ErrConflict, paymentID, ledgerEntry.Status)
		}
		entryID = *ledgerEntry.ScheduleEntryID
		ledgerEntryID = ledgerEntry.EntryID
	case errors.Is(err, apperrors.ErrNotFound):
		// Cash payment: no ledger leg, the id names the schedule entry.
	default:
		return fmt.Errorf("failed to find ledger entry %s: %w", paymentID, err)
	}

	target, err := s.scheduleRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find schedule entry %s: %w", entryID, err)
	}
	if target.Status != domain.EntryPaid {
		return fmt.Errorf("%w: entry %s is not paid", apperrors.ErrConflict, entryID)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, target.LoanID)
	if err != nil {
		return fmt.Errorf("failed to find loan %s: %w", target.LoanID, err)
	}
	schedule, err := s.scheduleRepo.FindScheduleByLoanID(ctx, loan.LoanID)
	if err != nil {
		return fmt.Errorf("failed to find schedule for loan %s: %w", loan.LoanID, err)
	}

	now := s.clock.Now()
	reopened := *target
	reopened.Status = domain.EntryPending
	reopened.PaidDate = nil
	reopened.LastUpdatedAt = now
	reopened.LastUpdatedBy = actorID

	currency := loan.Principal.CurrencyCode
	newTotalPaid := schedule.PaidPrincipalTotal(currency).MustSub(target.PrincipalDue)

	loan.TotalPaid = newTotalPaid
	if loan.Status == domain.LoanFullyPaid {
		loan.Status = domain.LoanActive
	}
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actorID

	rev := domain.PaymentReversal{
		Loan:          *loan,
		ReopenedEntry: reopened,
		LedgerEntryID: ledgerEntryID,
	}
	if err := s.loanRepo.SavePaymentReversal(ctx, rev); err != nil {
		logger.Error("Failed to reverse payment",
			slog.String("loan_id", loan.LoanID),
			slog.String("entry_id", entryID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to reverse payment on loan %s: %w", loan.LoanID, err)
	}

	logger.Info("Payment deleted",
		slog.String("loan_id", loan.LoanID),
		slog.String("entry_id", entryID),
		slog.String("loan_status", string(loan.Status)),
	)
	return nil
}
