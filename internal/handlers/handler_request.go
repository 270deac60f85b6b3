package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
	"github.com/SscSPs/document_tracking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requestHandler handles routing a document to its approvers.
type requestHandler struct {
	routingService portssvc.RoutingSvcFacade
}

// registerRequestRoutes registers routes related to document requests.
func registerRequestRoutes(rg *gin.RouterGroup, routingService portssvc.RoutingSvcFacade) {
	h := &requestHandler{routingService: routingService}

	requests := rg.Group("/documents/:documentID/requests")
	{
		requests.POST("", h.routeDocument)
		requests.GET("", h.listRequests)
		requests.GET("/status/:statusID", h.allInStatus)
	}

	rg.GET("/me/requests", h.myRequests)
}

// routeDocument godoc
// @Summary Route a document to approvers
// @Description Creates one In-Process request per distinct approver. Already routed approvers keep their existing request.
// @Tags requests
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param route body dto.RouteRequest true "Approvers"
// @Success 201 {array} dto.RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/requests [post]
func (h *requestHandler) routeDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	documentID := c.Param("documentID")
	requests, err := h.routingService.RouteToApprovers(c.Request.Context(), documentID, actor.UserID, req.ApproverIDs)
	if err != nil {
		respondError(c, err, "Failed to route document")
		return
	}

	logger.Info("Document routed via API", slog.String("document_id", documentID), slog.Int("requests", len(requests)))
	c.JSON(http.StatusCreated, dto.ToRequestResponses(requests))
}

// listRequests godoc
// @Summary List the requests of a document
// @Tags requests
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {array} dto.RequestResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
	requests, err := h.routingService.RequestsForDocument(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondError(c, err, "Failed to list requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

// allInStatus godoc
// @Summary Check whether every request of a document is in a status
// @Description False for a document without requests.
// @Tags requests
// @Produce json
// @Param documentID path string true "Document ID"
// @Param statusID path int true "Status ID"
// @Success 200 {object} dto.AllInStatusResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/requests/status/{statusID} [get]
func (h *requestHandler) allInStatus(c *gin.Context) {
	documentID := c.Param("documentID")
	statusID, err := strconv.Atoi(c.Param("statusID"))
	if err != nil || statusID <= 0 {
		respondError(c, apperrors.NewValidationError("statusID must be a positive integer"), "Invalid status ID")
		return
	}

	result, err := h.routingService.AllRequestsInStatus(c.Request.Context(), documentID, statusID)
	if err != nil {
		respondError(c, err, "Failed to check request statuses")
		return
	}
	c.JSON(http.StatusOK, dto.AllInStatusResponse{DocumentID: documentID, Result: result})
}

// myRequests godoc
// @Summary List the requests addressed to the caller
// @Tags requests
// @Produce json
// @Success 200 {array} dto.RequestResponse
// @Security BearerAuth
// @Router /me/requests [get]
func (h *requestHandler) myRequests(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	requests, err := h.routingService.RequestsForRecipient(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err, "Failed to list requests for user")
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}
