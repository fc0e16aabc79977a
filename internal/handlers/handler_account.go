package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/dto"
	"github.com/chriscouch/ledgercore/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	chartService portssvc.ChartSvcFacade
}

func newAccountHandler(cs portssvc.ChartSvcFacade) *accountHandler {
	return &accountHandler{chartService: cs}
}

// registerAccountRoutes registers routes related to chart accounts.
func registerAccountRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade) {
	h := newAccountHandler(chartService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create account", slog.String("account_name", req.Name))

	accountID, err := h.chartService.FindOrCreateAccount(
		c.Request.Context(), req.Name, domain.AccountType(req.AccountType), req.CurrencyCode, actorID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Unknown currency for new account", slog.String("currency_code", req.CurrencyCode))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown currency code " + req.CurrencyCode})
		} else {
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account ready", slog.String("account_id", accountID))
	c.JSON(http.StatusCreated, gin.H{"accountID": accountID})
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.chartService.GetAllAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	res := make([]dto.AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		res = append(res, dto.ToAccountResponse(&acc))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })

	c.JSON(http.StatusOK, res)
}
