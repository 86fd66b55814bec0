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

type PgxVslaRepository struct {
	BaseRepository
}

// newPgxVslaRepository creates a new repository for savings-group cycle data.
func newPgxVslaRepository(base BaseRepository) portsrepo.VslaRepositoryFacade {
	return &PgxVslaRepository{BaseRepository: base}
}

var _ portsrepo.VslaRepositoryFacade = (*PgxVslaRepository)(nil)

const cycleColumns = `
	cycle_id, name, currency_code, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

// FindCycleByID retrieves a cycle by its ID.
func (r *PgxVslaRepository) FindCycleByID(ctx context.Context, cycleID string) (*domain.VslaCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM vsla_cycles WHERE cycle_id = $1;`
	var m models.VslaCycle
	err := r.Pool.QueryRow(ctx, query, cycleID).Scan(
		&m.CycleID, &m.Name, &m.CurrencyCode, &m.StartDate, &m.EndDate, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cycle by ID "+cycleID, err)
	}
	cycle := mapping.ToDomainVslaCycle(m)
	return &cycle, nil
}

// SaveCycle upserts a cycle row.
func (r *PgxVslaRepository) SaveCycle(ctx context.Context, cycle domain.VslaCycle) error {
	m := mapping.ToModelVslaCycle(cycle)
	query := `
		INSERT INTO vsla_cycles (` + cycleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (cycle_id) DO UPDATE SET
			name = EXCLUDED.name,
			end_date = EXCLUDED.end_date,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CycleID, m.Name, m.CurrencyCode, m.StartDate, m.EndDate, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save cycle "+m.CycleID, err)
	}
	return nil
}
