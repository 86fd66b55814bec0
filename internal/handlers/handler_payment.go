package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to loan payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	req := dto.RecordPaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	result, err := h.paymentService.ApplyPayment(c.Request.Context(), loanID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to apply payment")
		return
	}

	logger.Info("Payment applied successfully",
		slog.String("loan_id", loanID),
		slog.String("entry_id", result.PaidEntry.EntryID),
	)
	c.JSON(http.StatusOK, dto.ToPaymentResultResponse(result))
}

func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	actorID := middleware.GetActorIDFromContext(c)
	if err := h.paymentService.DeletePayment(c.Request.Context(), paymentID, actorID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete payment")
		return
	}

	logger.Info("Payment deleted successfully", slog.String("payment_id", paymentID))
	c.Status(http.StatusNoContent)
}
