package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/dto"
	"github.com/chriscouch/ledgercore/internal/middleware"
)

// ledgerHandler handles HTTP requests for posting, syncing and voiding.
type ledgerHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	documentService portssvc.DocumentSvcFacade
	rateProvider    portssvc.RateProvider
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, ds portssvc.DocumentSvcFacade, rp portssvc.RateProvider) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, documentService: ds, rateProvider: rp}
}

// registerLedgerRoutes registers the posting, sync, void and conversion routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, documentService portssvc.DocumentSvcFacade, rateProvider portssvc.RateProvider) {
	h := newLedgerHandler(ledgerService, documentService, rateProvider)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
	}
	documents := rg.Group("/documents")
	{
		documents.POST("/sync", h.syncDocument)
		documents.POST("/void", h.voidDocument)
	}
	rg.POST("/convert", h.convertCurrency)
}

// respondLedgerError maps service failures onto HTTP statuses. Unbalanced
// transactions surface as 422 with the service's exact message.
func respondLedgerError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case apperrors.IsUnbalanced(err):
		logger.Warn("Rejected unbalanced transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Referenced entity not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *ledgerHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := actorID(c)
	logger.Info("Received request to post transaction",
		slog.String("document_type", req.Document.Type),
		slog.String("document_reference", req.Document.Reference))

	documentID, err := h.documentService.GetOrCreateDocument(c.Request.Context(), req.Document.ToDocumentInput(), userID)
	if err != nil {
		respondLedgerError(c, logger, err, "register document")
		return
	}

	if err := h.ledgerService.CreateTransaction(c.Request.Context(), documentID, req.Transaction.ToTransaction(), userID); err != nil {
		respondLedgerError(c, logger, err, "post transaction")
		return
	}

	logger.Info("Transaction posted", slog.String("document_id", documentID))
	c.JSON(http.StatusCreated, dto.DocumentResponse{DocumentID: documentID})
}

func (h *ledgerHandler) syncDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SyncDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SyncDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := actorID(c)
	logger.Info("Received request to sync document",
		slog.String("document_type", req.Document.Type),
		slog.String("document_reference", req.Document.Reference),
		slog.Int("transaction_count", len(req.Transactions)))

	txns := make([]domain.Transaction, len(req.Transactions))
	for i, t := range req.Transactions {
		txns[i] = t.ToTransaction()
	}

	documentID, err := h.ledgerService.SyncDocument(c.Request.Context(), req.Document.ToDocumentInput(), txns, userID)
	if err != nil {
		respondLedgerError(c, logger, err, "sync document")
		return
	}

	logger.Info("Document synced", slog.String("document_id", documentID))
	c.JSON(http.StatusOK, dto.DocumentResponse{DocumentID: documentID})
}

func (h *ledgerHandler) voidDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VoidDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoidDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to void document",
		slog.String("document_type", req.Type),
		slog.String("document_reference", req.Reference))

	voidDocumentID, err := h.ledgerService.VoidDocument(c.Request.Context(), req.Type, req.Reference, actorID(c))
	if err != nil {
		respondLedgerError(c, logger, err, "void document")
		return
	}
	if voidDocumentID == "" {
		// Nothing was ever posted for the document; voiding is a no-op.
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Document voided", slog.String("void_document_id", voidDocumentID))
	c.JSON(http.StatusCreated, dto.DocumentResponse{DocumentID: voidDocumentID})
}

func (h *ledgerHandler) convertCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	converted, err := h.ledgerService.ConvertCurrency(c.Request.Context(), h.rateProvider, req.TargetCurrency, req.Date, req.Amount)
	if err != nil {
		respondLedgerError(c, logger, err, "convert currency")
		return
	}

	c.JSON(http.StatusOK, dto.ConvertCurrencyResponse{
		TargetCurrency: req.TargetCurrency,
		Date:           req.Date,
		Amount:         converted,
	})
}
