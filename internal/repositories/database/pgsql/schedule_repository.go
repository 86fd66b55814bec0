package pgsql

import (
	"context"
	"errors"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	"github.com/Chrisphine10/intellicash-core/internal/models"
	"github.com/Chrisphine10/intellicash-core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxScheduleRepository struct {
	BaseRepository
}

// newPgxScheduleRepository creates a new read-side repository for repayment
// schedules. Mutations go through the loan repository's composite methods.
func newPgxScheduleRepository(base BaseRepository) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{BaseRepository: base}
}

var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)

const scheduleColumns = `
	entry_id, loan_id, sequence, due_date, principal_due_amount,
	interest_due_amount, penalty_due_amount, amount_to_pay,
	running_balance_amount, currency_code, penalty_rate, status, paid_date,
	created_at, created_by, last_updated_at, last_updated_by`

// FindScheduleByLoanID retrieves a loan's full schedule ordered by sequence.
func (r *PgxScheduleRepository) FindScheduleByLoanID(ctx context.Context, loanID string) (*domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_entries
		WHERE loan_id = $1
		ORDER BY sequence ASC;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schedule for loan "+loanID, err)
	}
	defer rows.Close()

	entries := []models.ScheduleEntry{}
	for rows.Next() {
		m, err := scanScheduleEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan schedule entry for loan "+loanID, err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read schedule for loan "+loanID, err)
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &domain.Schedule{
		LoanID:  loanID,
		Entries: mapping.ToDomainScheduleEntrySlice(entries),
	}, nil
}

// FindEntryByID retrieves a single schedule entry.
func (r *PgxScheduleRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_entries WHERE entry_id = $1;`
	m, err := scanScheduleEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find schedule entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainScheduleEntry(*m)
	return &entry, nil
}

func scanScheduleEntry(row pgx.Row) (*models.ScheduleEntry, error) {
	var m models.ScheduleEntry
	err := row.Scan(
		&m.EntryID, &m.LoanID, &m.Sequence, &m.DueDate, &m.PrincipalDueAmount,
		&m.InterestDueAmount, &m.PenaltyDueAmount, &m.AmountToPay,
		&m.RunningBalanceAmount, &m.CurrencyCode, &m.PenaltyRate, &m.Status, &m.PaidDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
