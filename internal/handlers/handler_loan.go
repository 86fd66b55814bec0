package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	loanService    portssvc.LoanSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(loanService portssvc.LoanSvcFacade, balanceService portssvc.BalanceSvcFacade) *loanHandler {
	return &loanHandler{
		loanService:    loanService,
		balanceService: balanceService,
	}
}

func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateLoanRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	loan, err := h.loanService.CreateLoan(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create loan")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

func (h *loanHandler) disburseLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	req := dto.DisburseLoanRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for disburseLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	schedule, err := h.loanService.DisburseLoan(c.Request.Context(), loanID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to disburse loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}

func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	schedule, err := h.loanService.GetSchedule(c.Request.Context(), loanID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}

func (h *loanHandler) getLoanBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	balance, err := h.balanceService.LoanOutstandingBalance(c.Request.Context(), loanID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute loan balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

func (h *loanHandler) markDefaulted(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	actorID := middleware.GetActorIDFromContext(c)
	loan, err := h.loanService.MarkDefaulted(c.Request.Context(), loanID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark loan defaulted")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) createGuarantorHold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateGuarantorHoldRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createGuarantorHold", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	hold, err := h.loanService.CreateGuarantorHold(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create guarantor hold")
		return
	}

	c.JSON(http.StatusCreated, hold)
}

// registerLoanRoutes registers loan specific routes
func registerLoanRoutes(group *gin.RouterGroup, loanSvc portssvc.LoanSvcFacade, paymentSvc portssvc.PaymentSvcFacade, balanceSvc portssvc.BalanceSvcFacade) {
	loanHandler := newLoanHandler(loanSvc, balanceSvc)
	paymentHandler := newPaymentHandler(paymentSvc)

	loans := group.Group("/loans")
	{
		loans.POST("/", loanHandler.createLoan)
		loans.GET("/:loanID", loanHandler.getLoan)
		loans.POST("/:loanID/disburse", loanHandler.disburseLoan)
		loans.GET("/:loanID/schedule", loanHandler.getSchedule)
		loans.GET("/:loanID/balance", loanHandler.getLoanBalance)
		loans.POST("/:loanID/default", loanHandler.markDefaulted)
		loans.POST("/:loanID/payments", paymentHandler.recordPayment)
	}

	group.POST("/guarantor-holds", loanHandler.createGuarantorHold)
	group.DELETE("/payments/:paymentID", paymentHandler.deletePayment)
}
