package services

import (
	"context"
	"log/slog"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
)

// loggingNotifier is the default notifier: it only logs. Real notification
// delivery lives in the surrounding application; whatever implementation is
// plugged in, its failures must never roll back the financial mutation that
// triggered it.
type loggingNotifier struct{}

// NewLoggingNotifier returns a Notifier that records events in the log.
func NewLoggingNotifier() portssvc.Notifier {
	return loggingNotifier{}
}

func (loggingNotifier) PaymentRecorded(ctx context.Context, result domain.PaymentResult) {
	middleware.GetLoggerFromCtx(ctx).Info("Payment recorded",
		slog.String("loan_id", result.Loan.LoanID),
		slog.String("entry_id", result.PaidEntry.EntryID),
		slog.String("loan_status", string(result.Loan.Status)),
	)
}

func (loggingNotifier) LoanDisbursed(ctx context.Context, loan domain.Loan) {
	middleware.GetLoggerFromCtx(ctx).Info("Loan disbursed",
		slog.String("loan_id", loan.LoanID),
		slog.String("borrower_id", loan.BorrowerID),
	)
}
