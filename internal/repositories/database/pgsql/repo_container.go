package pgsql

import (
	"time"

	portsrepo "github.com/Chrisphine10/intellicash-core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgsql repositories around one pool with a
// shared transaction deadline.
func NewRepositoryProvider(dbPool *pgxpool.Pool, txTimeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, TxTimeout: txTimeout}

	return portsrepo.RepositoryProvider{
		LoanRepo:      newPgxLoanRepository(base),
		ScheduleRepo:  newPgxScheduleRepository(base),
		LedgerRepo:    newPgxLedgerRepository(base),
		AccountRepo:   newPgxAccountRepository(base),
		GuarantorRepo: newPgxGuarantorRepository(base),
		VslaRepo:      newPgxVslaRepository(base),
	}
}
