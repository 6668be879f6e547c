package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	portsrepo "github.com/mocustoms/store_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/store_transfer_app/internal/core/ports/services"
	"github.com/mocustoms/store_transfer_app/internal/dto"
	"github.com/mocustoms/store_transfer_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transferService implements the transfer request workflow. All state
// machine and quantity rules live on the domain aggregate; this layer loads
// the aggregate, authorizes the caller, resolves reference data, applies
// the domain operation and persists the result atomically with the ledger
// entries the operation produced.
type transferService struct {
	transferRepo    portsrepo.TransferRepositoryWithTx
	storeSvc        portssvc.StoreSvcFacade
	rateSvc         portssvc.RateResolverSvc
	authSvc         portssvc.AuthorizationSvcFacade
	defaultCurrency string
}

// NewTransferService creates a new transfer workflow service.
func NewTransferService(
	transferRepo portsrepo.TransferRepositoryWithTx,
	storeSvc portssvc.StoreSvcFacade,
	rateSvc portssvc.RateResolverSvc,
	authSvc portssvc.AuthorizationSvcFacade,
	defaultCurrency string,
) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo:    transferRepo,
		storeSvc:        storeSvc,
		rateSvc:         rateSvc,
		authSvc:         authSvc,
		defaultCurrency: strings.ToUpper(defaultCurrency),
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// newReferenceNumber mints a human-facing reference like STR-2025-1A2B3C4D.
// Uniqueness is enforced by the database; the uuid fragment makes races
// across concurrent creators vanishingly unlikely.
func newReferenceNumber(now time.Time) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("STR-%d-%s", now.Year(), fragment)
}

// buildItems converts request line payloads into domain lines, resolving
// each line's exchange rate towards the system default currency once.
func (s *transferService) buildItems(ctx context.Context, requestID string, lines []dto.CreateTransferItem, headerCurrency string, asOf time.Time, userID string, now time.Time) ([]domain.StoreRequestItem, error) {
	items := make([]domain.StoreRequestItem, 0, len(lines))
	for _, line := range lines {
		if line.RequestedQuantity.IsNegative() {
			return nil, fmt.Errorf("%w: requested quantity %s for product %s is negative",
				apperrors.ErrValidation, line.RequestedQuantity, line.ProductID)
		}
		if line.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: unit cost %s for product %s is negative",
				apperrors.ErrValidation, line.UnitCost, line.ProductID)
		}
		currencyCode := strings.ToUpper(line.CurrencyCode)
		if currencyCode == "" {
			currencyCode = headerCurrency
		}
		rate, err := s.rateSvc.ResolveRate(ctx, currencyCode, s.defaultCurrency, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve rate for line currency %s: %w", currencyCode, err)
		}
		items = append(items, domain.StoreRequestItem{
			ItemID:            uuid.NewString(),
			RequestID:         requestID,
			ProductID:         line.ProductID,
			RequestedQuantity: line.RequestedQuantity,
			IssuedQuantity:    decimal.Zero,
			ReceivedQuantity:  decimal.Zero,
			UnitCost:          line.UnitCost,
			CurrencyCode:      currencyCode,
			ExchangeRate:      rate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return items, nil
}

// mintTransactionIDs assigns ledger entry ids ahead of persistence.
func mintTransactionIDs(txns []domain.ItemTransaction) {
	for i := range txns {
		txns[i].TransactionID = uuid.NewString()
	}
}

// CreateRequest builds and persists a new draft aggregate together with
// its initial REQUESTED ledger entries.
func (s *transferService) CreateRequest(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.StoreRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authSvc.AuthorizeAction(ctx, creatorUserID, portssvc.ActionCreate); err != nil {
		return nil, err
	}

	now := time.Now()
	request := domain.StoreRequest{
		RequestID:         uuid.NewString(),
		ReferenceNumber:   newReferenceNumber(now),
		RequestDate:       req.RequestDate,
		RequestingStoreID: req.RequestingStoreID,
		IssuingStoreID:    req.IssuingStoreID,
		Priority:          req.Priority,
		CurrencyCode:      strings.ToUpper(req.CurrencyCode),
		Version:           1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := request.ValidateHeader(); err != nil {
		return nil, err
	}
	if err := s.storeSvc.ValidateTransferPair(ctx, req.RequestingStoreID, req.IssuingStoreID); err != nil {
		return nil, err
	}

	headerRate, err := s.rateSvc.ResolveRate(ctx, request.CurrencyCode, s.defaultCurrency, req.RequestDate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve header rate for %s: %w", request.CurrencyCode, err)
	}
	request.ExchangeRate = headerRate

	items, err := s.buildItems(ctx, request.RequestID, req.Items, request.CurrencyCode, req.RequestDate, creatorUserID, now)
	if err != nil {
		return nil, err
	}
	request.Items = items
	request.Recompute()

	txns := request.RequestedTransactions(creatorUserID, now)
	mintTransactionIDs(txns)

	if err := s.transferRepo.CreateRequest(ctx, request, txns); err != nil {
		logger.Error("failed to persist transfer request", "request_id", request.RequestID, "error", err)
		return nil, fmt.Errorf("failed to create transfer request: %w", err)
	}

	logger.Info("transfer request created",
		"request_id", request.RequestID,
		"reference_number", request.ReferenceNumber,
		"items", len(request.Items))
	request.Ledger = txns
	return &request, nil
}

// UpdateDraft replaces the editable header fields and all lines of a draft.
// Replaced lines get fresh ids and fresh REQUESTED ledger entries; the old
// lines and their entries go away with them. The ledger is append-only from
// submission onward.
func (s *transferService) UpdateDraft(ctx context.Context, requestID string, req dto.UpdateTransferRequest, userID string) (*domain.StoreRequest, error) {
	if err := s.authSvc.AuthorizeAction(ctx, userID, portssvc.ActionCreate); err != nil {
		return nil, err
	}
	request, err := s.transferRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer request %s: %w", requestID, err)
	}
	if request.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: request %s is %s, only drafts can be edited",
			apperrors.ErrInvalidTransition, requestID, request.Status)
	}

	now := time.Now()
	request.RequestDate = req.RequestDate
	request.Priority = req.Priority
	request.CurrencyCode = strings.ToUpper(req.CurrencyCode)
	if err := request.ValidateHeader(); err != nil {
		return nil, err
	}

	headerRate, err := s.rateSvc.ResolveRate(ctx, request.CurrencyCode, s.defaultCurrency, req.RequestDate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve header rate for %s: %w", request.CurrencyCode, err)
	}
	request.ExchangeRate = headerRate

	items, err := s.buildItems(ctx, request.RequestID, req.Items, request.CurrencyCode, req.RequestDate, userID, now)
	if err != nil {
		return nil, err
	}
	request.Items = items
	request.Touch(userID, now)
	request.Recompute()

	txns := request.RequestedTransactions(userID, now)
	mintTransactionIDs(txns)

	return s.save(ctx, request, txns)
}

// save persists a mutated aggregate under optimistic concurrency and bumps
// its version on success.
func (s *transferService) save(ctx context.Context, request *domain.StoreRequest, newTxns []domain.ItemTransaction) (*domain.StoreRequest, error) {
	expected := request.Version
	request.Version = expected + 1
	if err := s.transferRepo.SaveRequest(ctx, *request, newTxns, expected); err != nil {
		return nil, fmt.Errorf("failed to save transfer request %s: %w", request.RequestID, err)
	}
	return request, nil
}

// mutate loads the aggregate, applies op and persists the outcome. The op
// returns the ledger entries it produced.
func (s *transferService) mutate(ctx context.Context, requestID, userID string, action portssvc.WorkflowAction, op func(r *domain.StoreRequest) ([]domain.ItemTransaction, error)) (*domain.StoreRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authSvc.AuthorizeAction(ctx, userID, action); err != nil {
		return nil, err
	}
	request, err := s.transferRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer request %s: %w", requestID, err)
	}

	txns, err := op(request)
	if err != nil {
		return nil, err
	}
	mintTransactionIDs(txns)

	saved, err := s.save(ctx, request, txns)
	if err != nil {
		return nil, err
	}
	logger.Info("transfer request updated",
		"request_id", requestID,
		"action", string(action),
		"status", string(saved.Status),
		"version", saved.Version)
	return saved, nil
}

func (s *transferService) SubmitRequest(ctx context.Context, requestID string, userID string) (*domain.StoreRequest, error) {
	return s.mutate(ctx, requestID, userID, portssvc.ActionSubmit, func(r *domain.StoreRequest) ([]domain.ItemTransaction, error) {
		return nil, r.Submit(userID, time.Now())
	})
}

func (s *transferService) ApproveRequest(ctx context.Context, requestID string, req dto.ApproveTransferRequest, userID string) (*domain.StoreRequest, error) {
	return s.mutate(ctx, requestID, userID, portssvc.ActionApprove, func(r *domain.StoreRequest) ([]domain.ItemTransaction, error) {
		return r.Approve(itemQuantityMap(req.Items), userID, time.Now(), req.Notes)
	})
}

func (s *transferService) RejectRequest(ctx context.Context, requestID string, req dto.RejectTransferRequest, userID string) (*domain.StoreRequest, error) {
	return s.mutate(ctx, requestID, userID, portssvc.ActionReject, func(r *domain.StoreRequest) ([]domain.ItemTransaction, error) {
		return r.Reject(req.Reason, userID, time.Now())
	})
}

func (s *transferService) IssueRequest(ctx context.Context, requestID string, req dto.IssueTransferRequest, userID string) (*domain.StoreRequest, error) {
	return s.mutate(ctx, requestID, userID, portssvc.ActionIssue, func(r *domain.StoreRequest) ([]domain.ItemTransaction, error) {
		return r.Issue(itemQuantityMap(req.Items), userID, time.Now(), req.Notes)
	})
}

func (s *transferService) ReceiveRequest(ctx context.Context, requestID string, req dto.ReceiveTransferRequest, userID string) (*domain.StoreRequest, error) {
	return s.mutate(ctx, requestID, userID, portssvc.ActionReceive, func(r *domain.StoreRequest) ([]domain.ItemTransaction, error) {
		return r.Receive(itemQuantityMap(req.Items), userID, time.Now(), req.Notes)
	})
}

func (s *transferService) CancelRequest(ctx context.Context, requestID string, req dto.CancelTransferRequest, userID string) (*domain.StoreRequest, error) {
	return s.mutate(ctx, requestID, userID, portssvc.ActionCancel, func(r *domain.StoreRequest) ([]domain.ItemTransaction, error) {
		return nil, r.Cancel(req.Reason, userID, time.Now())
	})
}

// itemQuantityMap flattens the payload lines into the per-item delta map
// the domain operations take. Duplicate item ids keep the last quantity;
// the domain rejects unknown ids.
func itemQuantityMap(lines []dto.ItemQuantity) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		m[line.ItemID] = line.Quantity
	}
	return m
}

// GetRequest retrieves the full aggregate including its ledger.
func (s *transferService) GetRequest(ctx context.Context, requestID string, requestingUserID string) (*domain.StoreRequest, error) {
	if err := s.authSvc.AuthorizeAction(ctx, requestingUserID, portssvc.ActionRead); err != nil {
		return nil, err
	}
	request, err := s.transferRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer request %s: %w", requestID, err)
	}
	ledger, err := s.transferRepo.FindTransactionsByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for request %s: %w", requestID, err)
	}
	request.Ledger = ledger
	return request, nil
}

// ListRequests retrieves a page of request headers.
func (s *transferService) ListRequests(ctx context.Context, params dto.ListTransfersParams, requestingUserID string) (*dto.ListTransfersResponse, error) {
	if err := s.authSvc.AuthorizeAction(ctx, requestingUserID, portssvc.ActionRead); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}
	filter := portsrepo.ListRequestsFilter{
		Status:            params.Status,
		RequestingStoreID: params.RequestingStoreID,
		IssuingStoreID:    params.IssuingStoreID,
	}
	requests, newToken, err := s.transferRepo.ListRequests(ctx, filter, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer requests: %w", err)
	}
	resp := dto.ToListTransfersResponse(requests, newToken)
	return &resp, nil
}

// ReconcileRequest replays every line's ledger against its stored counters.
// A consistent result proves the append-only history and the cached
// counters agree; anything else is data drift worth an alert.
func (s *transferService) ReconcileRequest(ctx context.Context, requestID string, requestingUserID string) (*dto.ReconciliationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.authSvc.AuthorizeAction(ctx, requestingUserID, portssvc.ActionRead); err != nil {
		return nil, err
	}
	request, err := s.transferRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer request %s: %w", requestID, err)
	}
	ledger, err := s.transferRepo.FindTransactionsByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for request %s: %w", requestID, err)
	}

	byItem := make(map[string][]domain.ItemTransaction, len(request.Items))
	for _, txn := range ledger {
		byItem[txn.ItemID] = append(byItem[txn.ItemID], txn)
	}

	resp := dto.ReconciliationResponse{
		RequestID:  requestID,
		Consistent: true,
		Items:      make([]dto.ItemReconciliation, 0, len(request.Items)),
	}
	for i := range request.Items {
		item := request.Items[i]
		txns := byItem[item.ItemID]
		folded := domain.FoldTransactions(txns)
		result := dto.ItemReconciliation{
			ItemID:           item.ItemID,
			Consistent:       true,
			StoredApproved:   item.ApprovedQuantity,
			StoredIssued:     item.IssuedQuantity,
			StoredReceived:   item.ReceivedQuantity,
			ReplayedApproved: folded.Approved,
			ReplayedIssued:   folded.Issued,
			ReplayedReceived: folded.Received,
		}
		if err := domain.ReconcileItem(item, txns); err != nil {
			result.Consistent = false
			result.Detail = err.Error()
			resp.Consistent = false
			logger.Warn("ledger drift detected", "request_id", requestID, "item_id", item.ItemID, "detail", err.Error())
		}
		resp.Items = append(resp.Items, result)
	}
	return &resp, nil
}
