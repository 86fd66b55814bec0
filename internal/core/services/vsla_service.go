package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
)

// shareoutTypes are the ledger entry types that feed a cycle's share-out
// pool: member contributions plus the penalties and interest earned on them.
var shareoutTypes = []domain.LedgerType{
	domain.TypeContribution,
	domain.TypePenalty,
	domain.TypeInterestPosting,
}

// vslaService computes savings-group cycle figures on top of the ledger's
// summation primitives.
type vslaService struct {
	vslaRepo   portsrepo.VslaRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
	clock      portssvc.Clock
}

// NewVslaService creates a new VslaService.
func NewVslaService(
	vslaRepo portsrepo.VslaRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	clock portssvc.Clock,
) portssvc.VslaSvcFacade {
	return &vslaService{
		vslaRepo:   vslaRepo,
		ledgerRepo: ledgerRepo,
		clock:      clock,
	}
}

var _ portssvc.VslaSvcFacade = (*vslaService)(nil)

// ShareoutPool sums cleared contribution, penalty and interest entries over
// the cycle's window. For a cycle still open the window is bounded at the
// current date rather than the planned end.
func (s *vslaService) ShareoutPool(ctx context.Context, cycleID string) (domain.Money, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cycle, err := s.vslaRepo.FindCycleByID(ctx, cycleID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to find cycle %s: %w", cycleID, err)
	}

	end := cycle.EndDate
	if cycle.Status == domain.CycleOpen {
		if now := s.clock.Now(); now.Before(end) {
			end = now
		}
	}

	total, err := s.ledgerRepo.SumClearedByTypesBetween(ctx, shareoutTypes, cycle.CurrencyCode, cycle.StartDate, end)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to sum share-out pool for cycle %s: %w", cycleID, err)
	}

	logger.Info("Share-out pool computed",
		slog.String("cycle_id", cycleID),
		slog.Int64("pool", total),
	)
	return domain.NewMoney(total, cycle.CurrencyCode), nil
}
