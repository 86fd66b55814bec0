package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
	"github.com/google/uuid"
)

const maxListLimit = 100

// ledgerService appends money movements and runs the clearing workflow.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	loanRepo    portsrepo.LoanRepositoryFacade
	clock       portssvc.Clock
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	loanRepo portsrepo.LoanRepositoryFacade,
	clock portssvc.Clock,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		loanRepo:    loanRepo,
		clock:       clock,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Append records a money movement against an account. Entries land PENDING by
// default; ClearImmediately posts them cleared in one step, with the clearing
// balance check still applied to debits by the repository.
func (s *ledgerService) Append(ctx context.Context, req dto.AppendLedgerEntryRequest, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, account.AccountID)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidArgument)
	}

	now := s.clock.Now()
	entry := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		AccountID: account.AccountID,
		MemberID:  req.MemberID,
		Date:      req.Date,
		Amount:    domain.NewMoney(req.Amount, account.CurrencyCode),
		Direction: req.Direction,
		Status:    domain.LedgerPending,
		Type:      req.Type,
		LoanID:    req.LoanID,
		Notes:     req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save ledger entry", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	if req.ClearImmediately {
		cleared, err := s.ledgerRepo.ClearEntry(ctx, entry.EntryID, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to clear ledger entry %s: %w", entry.EntryID, err)
		}
		entry = *cleared
	}

	logger.Info("Ledger entry appended",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_id", entry.AccountID),
		slog.String("type", string(entry.Type)),
		slog.String("status", string(entry.Status)),
	)
	return &entry, nil
}

// Transfer moves funds between two member accounts as paired cleared legs:
// a debit on the source linked from a credit on the destination. The debit
// side's balance rules are enforced by the repository under the account lock.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.LedgerEntry, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromAccountID == req.ToAccountID {
		return nil, nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrInvalidArgument)
	}

	from, err := s.accountRepo.FindAccountByID(ctx, req.FromAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find account %s: %w", req.FromAccountID, err)
	}
	to, err := s.accountRepo.FindAccountByID(ctx, req.ToAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find account %s: %w", req.ToAccountID, err)
	}
	if !from.IsActive || !to.IsActive {
		return nil, nil, fmt.Errorf("%w", ErrAccountInactive)
	}
	if from.CurrencyCode != to.CurrencyCode {
		return nil, nil, fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, from.CurrencyCode, to.CurrencyCode)
	}

	now := s.clock.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
	amount := domain.NewMoney(req.Amount, from.CurrencyCode)

	debit := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   from.AccountID,
		MemberID:    req.FromMemberID,
		Date:        req.Date,
		Amount:      amount,
		Direction:   domain.Debit,
		Status:      domain.LedgerCleared,
		Type:        domain.TypeTransfer,
		Notes:       req.Notes,
		AuditFields: audit,
	}
	credit := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		AccountID:     to.AccountID,
		MemberID:      req.ToMemberID,
		Date:          req.Date,
		Amount:        amount,
		Direction:     domain.Credit,
		Status:        domain.LedgerCleared,
		Type:          domain.TypeTransfer,
		ParentEntryID: &debit.EntryID,
		Notes:         req.Notes,
		AuditFields:   audit,
	}

	if err := s.ledgerRepo.SaveTransferPair(ctx, debit, credit); err != nil {
		logger.Error("Failed to save transfer",
			slog.String("from_account_id", from.AccountID),
			slog.String("to_account_id", to.AccountID),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer recorded",
		slog.String("debit_entry_id", debit.EntryID),
		slog.String("credit_entry_id", credit.EntryID),
	)
	return &debit, &credit, nil
}

// Clear transitions a pending entry to cleared.
func (s *ledgerService) Clear(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.ClearEntry(ctx, entryID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear ledger entry %s: %w", entryID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Ledger entry cleared", slog.String("entry_id", entryID))
	return entry, nil
}

// Reject transitions a pending entry to rejected.
func (s *ledgerService) Reject(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.RejectEntry(ctx, entryID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to reject ledger entry %s: %w", entryID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Ledger entry rejected", slog.String("entry_id", entryID))
	return entry, nil
}

// Reverse cancels a cleared entry's balance effect. Loan-linked entries are
// refused: repayment legs must go through the delete-payment override so the
// schedule and loan totals stay in step, and disbursement legs cannot be
// undone while the loan they funded is still active.
func (s *ledgerService) Reverse(ctx context.Context, entryID string, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	if entry.Type == domain.TypeLoanRepayment {
		return nil, fmt.Errorf("%w: repayment entries are reversed through delete-payment", apperrors.ErrConflict)
	}
	if entry.Type == domain.TypeLoanDisbursement && entry.LoanID != nil {
		loan, err := s.loanRepo.FindLoanByID(ctx, *entry.LoanID)
		if err != nil {
			return nil, fmt.Errorf("failed to find loan %s: %w", *entry.LoanID, err)
		}
		if loan.Status == domain.LoanActive {
			return nil, fmt.Errorf("%w: cannot reverse disbursement of active loan %s", apperrors.ErrConflict, loan.LoanID)
		}
	}

	cancelled, err := s.ledgerRepo.CancelEntry(ctx, entryID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel ledger entry %s: %w", entryID, err)
	}

	logger.Info("Ledger entry reversed", slog.String("entry_id", entryID), slog.String("type", string(cancelled.Type)))
	return cancelled, nil
}

// ListByAccount returns a page of an account's entries, newest first.
func (s *ledgerService) ListByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	entries, token, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ledger entries for account %s: %w", accountID, err)
	}
	return entries, token, nil
}
