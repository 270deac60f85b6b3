package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
	"github.com/SscSPs/document_tracking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests related to documents and their versions.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	routingService  portssvc.RoutingSvcFacade
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade, routingService portssvc.RoutingSvcFacade) *documentHandler {
	return &documentHandler{
		documentService: documentService,
		routingService:  routingService,
	}
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, routingService portssvc.RoutingSvcFacade) {
	h := newDocumentHandler(documentService, routingService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("/:documentID", h.getDocument)
		documents.DELETE("/:documentID", h.deleteDocument)
		documents.DELETE("/:documentID/purge", h.purgeDocument)

		versions := documents.Group("/:documentID/versions")
		{
			versions.POST("", h.uploadVersion)
			versions.GET("", h.listVersions)
			versions.GET("/current", h.currentVersion)
			versions.DELETE("/latest", h.deleteLatestVersion)
		}
	}
}

// createDocument godoc
// @Summary Create a document
// @Description Creates a document from JSON, or from a multipart form whose "file" field becomes version 1. Approvers listed in approverIDs are routed right away.
// @Tags documents
// @Accept json,mpfd
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Param file formData file false "Initial file"
// @Success 201 {object} dto.CreateDocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	var file *domain.FileUpload
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
		upload, err := readUpload(c, "file")
		if err != nil {
			respondError(c, err, "Failed to read uploaded file")
			return
		}
		file = upload
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var resp dto.CreateDocumentResponse
	if file != nil {
		document, version, err := h.documentService.CreateDocumentWithFile(c.Request.Context(), req, *file, actor.UserID)
		if err != nil {
			respondError(c, err, "Failed to create document with file")
			return
		}
		versionResp := dto.ToVersionResponse(version)
		resp.Document = dto.ToDocumentResponse(document)
		resp.Version = &versionResp
	} else {
		document, err := h.documentService.CreateDocument(c.Request.Context(), req, actor.UserID)
		if err != nil {
			respondError(c, err, "Failed to create document")
			return
		}
		resp.Document = dto.ToDocumentResponse(document)
	}

	if len(req.ApproverIDs) > 0 {
		requests, err := h.routingService.RouteToApprovers(c.Request.Context(), resp.Document.DocumentID, actor.UserID, req.ApproverIDs)
		if err != nil {
			logger.Warn("Document created but routing failed", slog.String("document_id", resp.Document.DocumentID))
			respondError(c, err, "Failed to route new document")
			return
		}
		resp.Requests = dto.ToRequestResponses(requests)
		// routing moves the document out of Pending
		if document, err := h.documentService.GetDocument(c.Request.Context(), resp.Document.DocumentID); err == nil {
			resp.Document = dto.ToDocumentResponse(document)
		}
	}

	logger.Info("Document created via API", slog.String("document_id", resp.Document.DocumentID))
	c.JSON(http.StatusCreated, resp)
}

// getDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	document, err := h.documentService.GetDocument(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondError(c, err, "Failed to get document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// deleteDocument godoc
// @Summary Soft delete a document
// @Tags documents
// @Param documentID path string true "Document ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("documentID"), actor); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}

// purgeDocument godoc
// @Summary Hard delete a document and everything scoped to it
// @Description Admin only.
// @Tags documents
// @Param documentID path string true "Document ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/purge [delete]
func (h *documentHandler) purgeDocument(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if err := h.documentService.PurgeDocument(c.Request.Context(), c.Param("documentID"), actor); err != nil {
		respondError(c, err, "Failed to purge document")
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadVersion godoc
// @Summary Upload a new document version
// @Tags versions
// @Accept mpfd
// @Produce json
// @Param documentID path string true "Document ID"
// @Param file formData file true "Version file"
// @Param changeDescription formData string true "What changed"
// @Success 201 {object} dto.VersionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/versions [post]
func (h *documentHandler) uploadVersion(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.AddVersionRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	file, err := readUpload(c, "file")
	if err != nil {
		respondError(c, err, "Failed to read uploaded file")
		return
	}
	if file == nil {
		respondError(c, apperrors.NewValidationError("file is required"), "Version upload without file")
		return
	}

	version, err := h.documentService.UploadVersion(c.Request.Context(), c.Param("documentID"), *file, req.ChangeDescription, actor)
	if err != nil {
		respondError(c, err, "Failed to upload version")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVersionResponse(version))
}

// listVersions godoc
// @Summary List the versions of a document
// @Tags versions
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {array} dto.VersionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/versions [get]
func (h *documentHandler) listVersions(c *gin.Context) {
	versions, err := h.documentService.ListVersions(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondError(c, err, "Failed to list versions")
		return
	}
	c.JSON(http.StatusOK, dto.ToVersionResponses(versions))
}

// currentVersion godoc
// @Summary Get the current version of a document
// @Tags versions
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.VersionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/versions/current [get]
func (h *documentHandler) currentVersion(c *gin.Context) {
	documentID := c.Param("documentID")
	version, err := h.documentService.CurrentVersion(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to get current version")
		return
	}
	if version == nil {
		respondError(c, apperrors.NewNotFoundError("version of document", documentID), "Document has no versions")
		return
	}
	c.JSON(http.StatusOK, dto.ToVersionResponse(version))
}

// deleteLatestVersion godoc
// @Summary Remove the newest version of a document
// @Description Version 1 is never removed. Creator or admin.
// @Tags versions
// @Param documentID path string true "Document ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/versions/latest [delete]
func (h *documentHandler) deleteLatestVersion(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	documentID := c.Param("documentID")

	document, err := h.documentService.GetDocument(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to get document")
		return
	}
	if document.CreatorID != actor.UserID && !actor.IsAdmin() {
		respondError(c, apperrors.NewPermissionError("only the creator or an admin can remove versions"), "Version removal denied")
		return
	}

	if err := h.documentService.DeleteLatestVersion(c.Request.Context(), documentID); err != nil {
		respondError(c, err, "Failed to delete latest version")
		return
	}
	c.Status(http.StatusNoContent)
}
