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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for savings account data.
func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, member_id, currency_code, minimum_balance_amount,
	allow_negative, is_active, created_at, created_by, last_updated_at, last_updated_by`

// FindAccountByID retrieves a savings account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.SavingsAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM savings_accounts WHERE account_id = $1;`
	var m models.SavingsAccount
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID, &m.MemberID, &m.CurrencyCode, &m.MinimumBalanceAmount,
		&m.AllowNegative, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	account := mapping.ToDomainSavingsAccount(m)
	return &account, nil
}

// SaveAccount upserts a savings account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.SavingsAccount) error {
	m := mapping.ToModelSavingsAccount(account)
	query := `
		INSERT INTO savings_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account_id) DO UPDATE SET
			minimum_balance_amount = EXCLUDED.minimum_balance_amount,
			allow_negative = EXCLUDED.allow_negative,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.MemberID, m.CurrencyCode, m.MinimumBalanceAmount,
		m.AllowNegative, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save account "+m.AccountID, err)
	}
	return nil
}
