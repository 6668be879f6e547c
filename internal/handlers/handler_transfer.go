package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	portssvc "github.com/mocustoms/store_transfer_app/internal/core/ports/services"
	"github.com/mocustoms/store_transfer_app/internal/dto"
	"github.com/mocustoms/store_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests for the transfer request workflow.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers routes related to transfer requests.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:requestID", h.getTransfer)
		transfers.PUT("/:requestID", h.updateDraft)
		transfers.POST("/:requestID/submit", h.submitTransfer)
		transfers.POST("/:requestID/approve", h.approveTransfer)
		transfers.POST("/:requestID/reject", h.rejectTransfer)
		transfers.POST("/:requestID/issue", h.issueTransfer)
		transfers.POST("/:requestID/receive", h.receiveTransfer)
		transfers.POST("/:requestID/cancel", h.cancelTransfer)
		transfers.GET("/:requestID/reconcile", h.reconcileTransfer)
	}
}

// respondTransferError translates workflow errors to HTTP statuses.
func respondTransferError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transfer request not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNoApplicableRate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrQuantityInvariant):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Transfer operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transfer operation failed"})
	}
}

// createTransfer godoc
// @Summary Create a transfer request
// @Description Creates a new draft stock transfer request between two stores
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer request details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create transfer request"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.CreateRequest(c.Request.Context(), req, userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(request))
}

// listTransfers godoc
// @Summary List transfer requests
// @Description Retrieves a paginated list of transfer request headers with optional filters
// @Tags transfers
// @Produce  json
// @Param   status query string false "Filter by header status"
// @Param   requestingStoreID query string false "Filter by requesting store"
// @Param   issuingStoreID query string false "Filter by issuing store"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListTransfersResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list transfer requests"
// @Security BearerAuth
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransfers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transferService.ListRequests(c.Request.Context(), params, userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransfer godoc
// @Summary Get a transfer request
// @Description Retrieves the full transfer request including its lines and quantity ledger
// @Tags transfers
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transfer request"
// @Security BearerAuth
// @Router /transfers/{requestID} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.GetRequest(c.Request.Context(), c.Param("requestID"), userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(request))
}

// updateDraft godoc
// @Summary Update a draft transfer request
// @Description Replaces the editable header fields and lines of a request still in DRAFT
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Param   transfer body dto.UpdateTransferRequest true "Updated transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 409 {object} map[string]string "Request is no longer a draft"
// @Security BearerAuth
// @Router /transfers/{requestID} [put]
func (h *transferHandler) updateDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.UpdateDraft(c.Request.Context(), c.Param("requestID"), req, userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(request))
}

// submitTransfer godoc
// @Summary Submit a draft transfer request
// @Description Moves a draft request to SUBMITTED; at least one line must request a positive quantity
// @Tags transfers
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 409 {object} map[string]string "Submit is not legal from the current status"
// @Security BearerAuth
// @Router /transfers/{requestID}/submit [post]
func (h *transferHandler) submitTransfer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.SubmitRequest(c.Request.Context(), c.Param("requestID"), userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(request))
}

// approveTransfer godoc
// @Summary Approve a submitted transfer request
// @Description Records final approved quantities per line; a zero approval rejects the line
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Param   approval body dto.ApproveTransferRequest true "Per-line approved quantities"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 409 {object} map[string]string "Approve is not legal from the current status"
// @Failure 422 {object} map[string]string "Approved quantity exceeds requested"
// @Security BearerAuth
// @Router /transfers/{requestID}/approve [post]
func (h *transferHandler) approveTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApproveTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.ApproveRequest(c.Request.Context(), c.Param("requestID"), req, userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(request))
}

// rejectTransfer godoc
// @Summary Reject a submitted transfer request
// @Description Terminally refuses a submitted request without moving any quantities
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Param   rejection body dto.RejectTransferRequest true "Rejection reason"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 409 {object} map[string]string "Reject is not legal from the current status"
// @Security BearerAuth
// @Router /transfers/{requestID}/reject [post]
func (h *transferHandler) rejectTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RejectTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.RejectRequest(c.Request.Context(), c.Param("requestID"), req, userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(request))
}

// issueTransfer godoc
// @Summary Issue stock against an approved transfer request
// @Description Increases issued quantities by per-line deltas bounded by the approved quantity
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Param   issue body dto.IssueTransferRequest true "Per-line issue deltas"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 409 {object} map[string]string "Issue is not legal from the current status"
// @Failure 422 {object} map[string]string "Issue delta exceeds the remaining quantity"
// @Security BearerAuth
// @Router /transfers/{requestID}/issue [post]
func (h *transferHandler) issueTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.IssueRequest(c.Request.Context(), c.Param("requestID"), req, userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(request))
}

// receiveTransfer godoc
// @Summary Receive stock against an issued transfer request
// @Description Increases received quantities by per-line deltas bounded by the issued quantity
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Param   receipt body dto.ReceiveTransferRequest true "Per-line receive deltas"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 409 {object} map[string]string "Receive is not legal from the current status"
// @Failure 422 {object} map[string]string "Receive delta exceeds the remaining receiving quantity"
// @Security BearerAuth
// @Router /transfers/{requestID}/receive [post]
func (h *transferHandler) receiveTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceiveTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReceiveTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.ReceiveRequest(c.Request.Context(), c.Param("requestID"), req, userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(request))
}

// cancelTransfer godoc
// @Summary Cancel a transfer request
// @Description Abandons a request from any non-terminal state; moved quantities are kept frozen
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Param   cancellation body dto.CancelTransferRequest true "Cancellation reason"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 409 {object} map[string]string "Request is already terminal"
// @Security BearerAuth
// @Router /transfers/{requestID}/cancel [post]
func (h *transferHandler) cancelTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CancelTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.transferService.CancelRequest(c.Request.Context(), c.Param("requestID"), req, userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(request))
}

// reconcileTransfer godoc
// @Summary Reconcile a transfer request against its ledger
// @Description Replays every line's quantity ledger and compares the result with the stored counters
// @Tags transfers
// @Produce  json
// @Param   requestID path string true "Transfer Request ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} map[string]string "Transfer request not found"
// @Failure 500 {object} map[string]string "Failed to reconcile transfer request"
// @Security BearerAuth
// @Router /transfers/{requestID}/reconcile [get]
func (h *transferHandler) reconcileTransfer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transferService.ReconcileRequest(c.Request.Context(), c.Param("requestID"), userID)
	if err != nil {
		respondTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
