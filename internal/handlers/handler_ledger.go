package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
	"github.com/Chrisphine10/intellicash-core/internal/dto"
	"github.com/Chrisphine10/intellicash-core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 25

// ledgerHandler handles HTTP requests for ledger entries and account
// balances.
type ledgerHandler struct {
	ledgerService  portssvc.LedgerSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade, balanceService portssvc.BalanceSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:  ledgerService,
		balanceService: balanceService,
	}
}

func (h *ledgerHandler) appendEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.AppendLedgerEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for appendEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	entry, err := h.ledgerService.Append(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to append ledger entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.TransferRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	debit, credit, err := h.ledgerService.Transfer(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to transfer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"debit":  dto.ToLedgerEntryResponse(debit),
		"credit": dto.ToLedgerEntryResponse(credit),
	})
}

func (h *ledgerHandler) clearEntry(c *gin.Context) {
	h.transition(c, h.ledgerService.Clear, "Failed to clear ledger entry")
}

func (h *ledgerHandler) rejectEntry(c *gin.Context) {
	h.transition(c, h.ledgerService.Reject, "Failed to reject ledger entry")
}

func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	h.transition(c, h.ledgerService.Reverse, "Failed to reverse ledger entry")
}

func (h *ledgerHandler) transition(c *gin.Context, op func(ctx context.Context, entryID, actorID string) (*domain.LedgerEntry, error), fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorID := middleware.GetActorIDFromContext(c)
	entry, err := op(c.Request.Context(), entryID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, fallback)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected RFC3339"})
			return
		}
		asOf = &parsed
	}

	balance, err := h.balanceService.AvailableBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute account balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

func (h *ledgerHandler) listAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	entries, token, err := h.ledgerService.ListByAccount(c.Request.Context(), accountID, limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledger entries")
		return
	}

	c.JSON(http.StatusOK, dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: token,
	})
}

func (h *ledgerHandler) postInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	req := dto.PostInterestRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postInterest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	rate, err := decimal.NewFromString(req.RatePercent)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rate"})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	interest, err := h.balanceService.PostSavingsInterest(c.Request.Context(), accountID, rate, req.StartDate, req.EndDate, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post savings interest")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: interest})
}

// registerLedgerRoutes registers ledger and account specific routes
func registerLedgerRoutes(group *gin.RouterGroup, ledgerSvc portssvc.LedgerSvcFacade, balanceSvc portssvc.BalanceSvcFacade) {
	ledgerHandler := newLedgerHandler(ledgerSvc, balanceSvc)

	ledger := group.Group("/ledger")
	{
		ledger.POST("/", ledgerHandler.appendEntry)
		ledger.POST("/transfers", ledgerHandler.transfer)
		ledger.POST("/:entryID/clear", ledgerHandler.clearEntry)
		ledger.POST("/:entryID/reject", ledgerHandler.rejectEntry)
		ledger.POST("/:entryID/reverse", ledgerHandler.reverseEntry)
	}

	accounts := group.Group("/accounts")
	{
		accounts.GET("/:accountID/balance", ledgerHandler.getAccountBalance)
		accounts.GET("/:accountID/transactions", ledgerHandler.listAccountEntries)
		accounts.POST("/:accountID/interest-postings", ledgerHandler.postInterest)
	}
}
