package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
	"github.com/SscSPs/document_tracking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// placeholderHandler handles signature placeholders.
type placeholderHandler struct {
	signatureService portssvc.SignatureSvcFacade
}

// registerPlaceholderRoutes registers routes related to signature placeholders.
func registerPlaceholderRoutes(rg *gin.RouterGroup, signatureService portssvc.SignatureSvcFacade) {
	h := &placeholderHandler{signatureService: signatureService}

	placeholders := rg.Group("/documents/:documentID/placeholders")
	{
		placeholders.POST("", h.registerPlaceholders)
		placeholders.GET("", h.listPlaceholders)
		placeholders.GET("/signed", h.allSigned)
	}

	rg.POST("/placeholders/:placeholderID/sign", h.sign)
}

// registerPlaceholders godoc
// @Summary Register signature placeholders
// @Description Every assignee must be an approver of the document. Creator or admin.
// @Tags placeholders
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param placeholders body dto.RegisterPlaceholdersRequest true "Slots"
// @Success 201 {array} dto.PlaceholderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/placeholders [post]
func (h *placeholderHandler) registerPlaceholders(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req dto.RegisterPlaceholdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	placeholders, err := h.signatureService.RegisterPlaceholders(c.Request.Context(), c.Param("documentID"), req.ToPlaceholderInputs(), actor)
	if err != nil {
		respondError(c, err, "Failed to register placeholders")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlaceholderResponses(placeholders))
}

// listPlaceholders godoc
// @Summary List the placeholders of a document
// @Tags placeholders
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {array} dto.PlaceholderResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/placeholders [get]
func (h *placeholderHandler) listPlaceholders(c *gin.Context) {
	placeholders, err := h.signatureService.PlaceholdersForDocument(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondError(c, err, "Failed to list placeholders")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlaceholderResponses(placeholders))
}

// allSigned godoc
// @Summary Check whether every placeholder of a document is signed
// @Description False for a document without placeholders.
// @Tags placeholders
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.AllInStatusResponse
// @Security BearerAuth
// @Router /documents/{documentID}/placeholders/signed [get]
func (h *placeholderHandler) allSigned(c *gin.Context) {
	documentID := c.Param("documentID")
	result, err := h.signatureService.AllSigned(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to check signatures")
		return
	}
	c.JSON(http.StatusOK, dto.AllInStatusResponse{DocumentID: documentID, Result: result})
}

// sign godoc
// @Summary Sign a placeholder
// @Description Accepts JSON, or a multipart form whose "signedFile" field is appended as a new document version. Re-signing with the same data is a no-op.
// @Tags placeholders
// @Accept json,mpfd
// @Produce json
// @Param placeholderID path string true "Placeholder ID"
// @Param sign body dto.SignRequest true "Signature"
// @Param signedFile formData file false "Signed rendition"
// @Success 200 {object} dto.PlaceholderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /placeholders/{placeholderID}/sign [post]
func (h *placeholderHandler) sign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.SignRequest
	var signedFile *domain.FileUpload
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
		upload, err := readUpload(c, "signedFile")
		if err != nil {
			respondError(c, err, "Failed to read signed file")
			return
		}
		signedFile = upload
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	placeholderID := c.Param("placeholderID")
	placeholder, err := h.signatureService.MarkSignedWithFile(c.Request.Context(), placeholderID, actor.UserID, req.SignatureData, signedFile)
	if err != nil {
		respondError(c, err, "Failed to sign placeholder")
		return
	}

	logger.Info("Placeholder signed via API", slog.String("placeholder_id", placeholderID), slog.Bool("with_file", signedFile != nil))
	c.JSON(http.StatusOK, dto.ToPlaceholderResponse(placeholder))
}
