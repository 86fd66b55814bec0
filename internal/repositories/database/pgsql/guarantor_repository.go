package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	"github.com/Chrisphine10/intellicash-core/internal/models"
	"github.com/Chrisphine10/intellicash-core/internal/utils/mapping"
)

type PgxGuarantorRepository struct {
	BaseRepository
}

// newPgxGuarantorRepository creates a new repository for guarantor hold data.
func newPgxGuarantorRepository(base BaseRepository) portsrepo.GuarantorRepositoryFacade {
	return &PgxGuarantorRepository{BaseRepository: base}
}

var _ portsrepo.GuarantorRepositoryFacade = (*PgxGuarantorRepository)(nil)

const holdColumns = `
	hold_id, loan_id, guarantor_member_id, account_id, amount, currency_code,
	status, created_at, created_by, last_updated_at, last_updated_by`

// SaveHold inserts the hold after re-verifying, under the account lock, that
// active holds plus the new hold still fit within the cleared balance. The
// service's up-front check is optimistic; this one is authoritative.
func (r *PgxGuarantorRepository) SaveHold(ctx context.Context, hold domain.GuarantorHold) error {
	tx, txCtx, cancel, err := r.BeginBounded(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(txCtx, tx)

	if err := checkDebitAllowedTx(txCtx, tx, hold.AccountID, hold.Amount.Amount); err != nil {
		return fmt.Errorf("hold %s on account %s: %w", hold.Amount, hold.AccountID, err)
	}

	m := mapping.ToModelGuarantorHold(hold)
	if _, err := tx.Exec(txCtx, `
		INSERT INTO guarantor_holds (`+holdColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`, m.HoldID, m.LoanID, m.GuarantorMemberID, m.AccountID, m.Amount, m.CurrencyCode,
		m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapTxErr(err, "failed to insert guarantor hold "+m.HoldID)
	}

	return r.Commit(txCtx, tx)
}

// SumActiveHoldsByAccount returns the total amount held against an account.
func (r *PgxGuarantorRepository) SumActiveHoldsByAccount(ctx context.Context, accountID string) (int64, error) {
	var sum int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM guarantor_holds WHERE account_id = $1 AND status = 'ACTIVE';
	`, accountID).Scan(&sum)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum active holds for account "+accountID, err)
	}
	return sum, nil
}

// ListActiveHoldsByLoan returns the active holds backing a loan.
func (r *PgxGuarantorRepository) ListActiveHoldsByLoan(ctx context.Context, loanID string) ([]domain.GuarantorHold, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+holdColumns+`
		FROM guarantor_holds
		WHERE loan_id = $1 AND status = 'ACTIVE'
		ORDER BY created_at ASC;
	`, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query holds for loan "+loanID, err)
	}
	defer rows.Close()

	holds := []models.GuarantorHold{}
	for rows.Next() {
		var m models.GuarantorHold
		if err := rows.Scan(
			&m.HoldID, &m.LoanID, &m.GuarantorMemberID, &m.AccountID, &m.Amount, &m.CurrencyCode,
			&m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan hold for loan "+loanID, err)
		}
		holds = append(holds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read holds for loan "+loanID, err)
	}
	return mapping.ToDomainGuarantorHoldSlice(holds), nil
}

// ReleaseHoldsByLoan releases every active hold backing a loan.
func (r *PgxGuarantorRepository) ReleaseHoldsByLoan(ctx context.Context, loanID string, actorID string) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE guarantor_holds
		SET status = 'RELEASED', last_updated_at = $2, last_updated_by = $3
		WHERE loan_id = $1 AND status = 'ACTIVE';
	`, loanID, time.Now().UTC(), actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to release holds for loan "+loanID, err)
	}
	return nil
}
