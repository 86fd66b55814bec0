package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTxTimeout bounds composite transactions when no explicit timeout is
// configured.
const DefaultTxTimeout = 5 * time.Second

// BaseRepository provides common functionality for all repositories.
// Composite mutations run inside a deadline-bounded transaction; hitting the
// deadline rolls everything back and surfaces ErrTransactionTimeout.
type BaseRepository struct {
	Pool      *pgxpool.Pool
	TxTimeout time.Duration
}

// BeginBounded starts a transaction under the configured deadline. The
// returned context must be used for every statement in the transaction, and
// the cancel func deferred by the caller.
func (r *BaseRepository) BeginBounded(ctx context.Context) (pgx.Tx, context.Context, context.CancelFunc, error) {
	timeout := r.TxTimeout
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	txCtx, cancel := context.WithTimeout(ctx, timeout)
	tx, err := r.Pool.Begin(txCtx)
	if err != nil {
		cancel()
		return nil, nil, nil, mapTxErr(err, "failed to begin transaction")
	}
	return tx, txCtx, cancel, nil
}

// Rollback rolls back a transaction, ignoring the already-committed case.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		// Nothing actionable for the caller; the connection is returned either way.
		_ = err
	}
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return mapTxErr(err, "failed to commit transaction")
	}
	return nil
}

// mapTxErr maps a transaction-level failure onto the application error
// taxonomy, recognizing the bounded-duration deadline.
func mapTxErr(err error, msg string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewAppError(500, msg, apperrors.ErrTransactionTimeout)
	}
	return apperrors.NewAppError(500, msg, err)
}
