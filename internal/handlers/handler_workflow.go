package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
	"github.com/SscSPs/document_tracking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workflowHandler applies approval actions.
type workflowHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

// registerWorkflowRoutes registers the approval action routes.
func registerWorkflowRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := &workflowHandler{workflowService: workflowService}

	requests := rg.Group("/requests/:requestID")
	{
		requests.POST("/approve", h.approve)
		requests.POST("/hold", h.hold)
		requests.POST("/complete", h.complete)
	}

	rg.POST("/documents/:documentID/resume", h.resume)
	rg.POST("/documents/:documentID/undo-signatures", h.undoSignatures)
}

// approve godoc
// @Summary Approve a request
// @Description Approving an already approved request is a no-op.
// @Tags workflow
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/approve [post]
func (h *workflowHandler) approve(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	request, err := h.workflowService.Approve(c.Request.Context(), c.Param("requestID"), actor.UserID)
	if err != nil {
		respondError(c, err, "Failed to approve request")
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// hold godoc
// @Summary Put a document on hold
// @Description Every request of the document moves to On Hold with the remark.
// @Tags workflow
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param hold body dto.HoldRequest true "Remark"
// @Success 200 {array} dto.RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/hold [post]
func (h *workflowHandler) hold(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req dto.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	requests, err := h.workflowService.Hold(c.Request.Context(), c.Param("requestID"), actor.UserID, req.Remark)
	if err != nil {
		respondError(c, err, "Failed to hold document")
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

// complete godoc
// @Summary Mark a document complete
// @Description Requires every request approved. Creator or admin.
// @Tags workflow
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/complete [post]
func (h *workflowHandler) complete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	document, err := h.workflowService.MarkComplete(c.Request.Context(), c.Param("requestID"), actor)
	if err != nil {
		respondError(c, err, "Failed to complete document")
		return
	}
	logger.Info("Document completed via API", slog.String("document_id", document.DocumentID))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// resume godoc
// @Summary Resume an on-hold document
// @Description Creator only.
// @Tags workflow
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {array} dto.RequestResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/resume [post]
func (h *workflowHandler) resume(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	requests, err := h.workflowService.Resume(c.Request.Context(), c.Param("documentID"), actor)
	if err != nil {
		respondError(c, err, "Failed to resume document")
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

// undoSignatures godoc
// @Summary Reset all signatures of a document
// @Description Drops the latest version above version 1 and reopens approved requests. Creator or a past signer.
// @Tags workflow
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/undo-signatures [post]
func (h *workflowHandler) undoSignatures(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	document, err := h.workflowService.UndoSignatures(c.Request.Context(), c.Param("documentID"), actor.UserID)
	if err != nil {
		respondError(c, err, "Failed to undo signatures")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}
