package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/dto"
	"github.com/chriscouch/ledgercore/internal/middleware"
)

// reportingHandler handles HTTP requests for derived balances.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers balance reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	balances := rg.Group("/balances")
	{
		balances.GET("", h.listBalances)
		balances.GET("/:account", h.getAccountBalance)
	}
}

func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountName := c.Param("account")

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be an RFC 3339 timestamp"})
			return
		}
		asOf = &parsed
	}

	balance, err := h.reportingService.GetAccountBalance(c.Request.Context(), accountName, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to compute account balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":      accountName,
		"balance":      balance.Amount,
		"currencyCode": balance.CurrencyCode,
	})
}

func (h *reportingHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balances, err := h.reportingService.GetAccountBalances(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute ledger balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountBalanceResponse(balances))
}
