package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/dto"
	"github.com/chriscouch/ledgercore/internal/middleware"
)

// documentHandler handles HTTP requests for the document registry.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers document-type and document registry routes.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	types := rg.Group("/document-types")
	{
		types.POST("", h.createDocumentType)
	}
	documents := rg.Group("/documents")
	{
		documents.GET("/:id", h.getDocumentByID)
		documents.PUT("/:id", h.updateDocument)
	}
}

func (h *documentHandler) createDocumentType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocumentType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	typeID, err := h.documentService.CreateDocumentType(c.Request.Context(), req.Name, actorID(c))
	if err != nil {
		logger.Error("Failed to create document type in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document type"})
		return
	}

	logger.Info("Document type ready", slog.String("document_type", req.Name))
	c.JSON(http.StatusCreated, dto.DocumentTypeResponse{DocumentTypeID: typeID, Name: req.Name})
}

func (h *documentHandler) getDocumentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get document from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")
	var req dto.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.documentService.UpdateDocument(c.Request.Context(), documentID, req.ToDocumentInput(), actorID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update document in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		}
		return
	}

	logger.Info("Document metadata updated", slog.String("document_id", documentID))
	c.JSON(http.StatusOK, dto.DocumentResponse{DocumentID: documentID})
}
