package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/services"
	"github.com/gin-gonic/gin"
)

// respondServiceError translates a service-layer error into the HTTP
// response, logging at the severity the class of failure deserves.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrCurrencyMismatch),
		errors.Is(err, apperrors.ErrUnsupportedInterestMethod),
		errors.Is(err, apperrors.ErrScheduleMismatch),
		errors.Is(err, services.ErrCurrencyConflict),
		errors.Is(err, services.ErrUnknownTermPeriod):
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrAlreadyPaid),
		errors.Is(err, apperrors.ErrNoPendingEntry),
		errors.Is(err, apperrors.ErrScheduleExhausted),
		errors.Is(err, services.ErrLoanNotPending),
		errors.Is(err, services.ErrLoanNotActive),
		errors.Is(err, services.ErrAccountInactive):
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrBelowMinimumBalance):
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTransactionTimeout):
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Transaction timed out, no changes were applied"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
