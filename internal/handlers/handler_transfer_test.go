package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	portssvc "github.com/mocustoms/store_transfer_app/internal/core/ports/services"
	"github.com/mocustoms/store_transfer_app/internal/dto"
	"github.com/mocustoms/store_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) GetRequest(ctx context.Context, requestID string, requestingUserID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, requestID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

func (m *MockTransferService) ListRequests(ctx context.Context, params dto.ListTransfersParams, requestingUserID string) (*dto.ListTransfersResponse, error) {
	args := m.Called(ctx, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransfersResponse), args.Error(1)
}

func (m *MockTransferService) ReconcileRequest(ctx context.Context, requestID string, requestingUserID string) (*dto.ReconciliationResponse, error) {
	args := m.Called(ctx, requestID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReconciliationResponse), args.Error(1)
}

func (m *MockTransferService) CreateRequest(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

func (m *MockTransferService) UpdateDraft(ctx context.Context, requestID string, req dto.UpdateTransferRequest, userID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, requestID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

func (m *MockTransferService) SubmitRequest(ctx context.Context, requestID string, userID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, requestID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

func (m *MockTransferService) ApproveRequest(ctx context.Context, requestID string, req dto.ApproveTransferRequest, userID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, requestID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

func (m *MockTransferService) RejectRequest(ctx context.Context, requestID string, req dto.RejectTransferRequest, userID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, requestID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

func (m *MockTransferService) IssueRequest(ctx context.Context, requestID string, req dto.IssueTransferRequest, userID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, requestID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

func (m *MockTransferService) ReceiveRequest(ctx context.Context, requestID string, req dto.ReceiveTransferRequest, userID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, requestID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

func (m *MockTransferService) CancelRequest(ctx context.Context, requestID string, req dto.CancelTransferRequest, userID string) (*domain.StoreRequest, error) {
	args := m.Called(ctx, requestID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreRequest), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Test Suite ---
type TransferHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransferService
	jwtSecret   string
}

func (suite *TransferHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "sta-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerDecimalValidation()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockTransferService)

	v1 := suite.router.Group("/api/v1")
	registerTransferRoutes(v1, suite.mockService)
}

func (suite *TransferHandlerTestSuite) authedRequest(method, url string, body interface{}, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransferHandlerTestSuite) TestCreateTransfer_Success() {
	userID := uuid.NewString()
	payload := dto.CreateTransferRequest{
		RequestingStoreID: uuid.NewString(),
		IssuingStoreID:    uuid.NewString(),
		RequestDate:       time.Now().UTC().Truncate(time.Second),
		Priority:          domain.PriorityHigh,
		CurrencyCode:      "USD",
		Items: []dto.CreateTransferItem{
			{ProductID: uuid.NewString(), RequestedQuantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(5), CurrencyCode: "USD"},
		},
	}

	created := &domain.StoreRequest{
		RequestID:       uuid.NewString(),
		ReferenceNumber: "STR-2026-1A2B3C4D",
		Status:          domain.StatusDraft,
		Priority:        domain.PriorityHigh,
		CurrencyCode:    "USD",
		ExchangeRate:    decimal.NewFromInt(1),
		Version:         1,
	}

	suite.mockService.On("CreateRequest",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateTransferRequest) bool {
			return r.RequestingStoreID == payload.RequestingStoreID && len(r.Items) == 1
		}),
		userID,
	).Return(created, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers", payload, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.RequestID, resp.RequestID)
	suite.Equal(created.ReferenceNumber, resp.ReferenceNumber)
	suite.Equal(domain.StatusDraft, resp.Status)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestCreateTransfer_MissingAuth() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateRequest")
}

func (suite *TransferHandlerTestSuite) TestCreateTransfer_ZeroQuantityBinds() {
	// An explicit zero requested quantity must pass binding; sign rules are
	// the domain's job, not the payload validator's.
	userID := uuid.NewString()
	payload := dto.CreateTransferRequest{
		RequestingStoreID: uuid.NewString(),
		IssuingStoreID:    uuid.NewString(),
		RequestDate:       time.Now().UTC(),
		Priority:          domain.PriorityLow,
		CurrencyCode:      "USD",
		Items: []dto.CreateTransferItem{
			{ProductID: uuid.NewString(), RequestedQuantity: decimal.Zero, UnitCost: decimal.NewFromInt(1)},
		},
	}

	created := &domain.StoreRequest{RequestID: uuid.NewString(), Status: domain.StatusDraft}
	suite.mockService.On("CreateRequest", mock.Anything, mock.AnythingOfType("dto.CreateTransferRequest"), userID).
		Return(created, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers", payload, userID)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestGetTransfer_NotFound() {
	userID := uuid.NewString()
	requestID := uuid.NewString()

	suite.mockService.On("GetRequest", mock.Anything, requestID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transfers/"+requestID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestApproveTransfer_VersionConflict() {
	userID := uuid.NewString()
	requestID := uuid.NewString()
	payload := dto.ApproveTransferRequest{
		Items: []dto.ItemQuantity{{ItemID: uuid.NewString(), Quantity: decimal.NewFromInt(5)}},
	}

	suite.mockService.On("ApproveRequest", mock.Anything, requestID, mock.AnythingOfType("dto.ApproveTransferRequest"), userID).
		Return(nil, fmt.Errorf("save failed: %w", apperrors.ErrConcurrentModification)).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers/"+requestID+"/approve", payload, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestIssueTransfer_QuantityInvariant() {
	userID := uuid.NewString()
	requestID := uuid.NewString()
	payload := dto.IssueTransferRequest{
		Items: []dto.ItemQuantity{{ItemID: uuid.NewString(), Quantity: decimal.NewFromInt(999)}},
	}

	suite.mockService.On("IssueRequest", mock.Anything, requestID, mock.AnythingOfType("dto.IssueTransferRequest"), userID).
		Return(nil, fmt.Errorf("%w: issue exceeds approved", apperrors.ErrQuantityInvariant)).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers/"+requestID+"/issue", payload, userID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestSubmitTransfer_InvalidTransition() {
	userID := uuid.NewString()
	requestID := uuid.NewString()

	suite.mockService.On("SubmitRequest", mock.Anything, requestID, userID).
		Return(nil, fmt.Errorf("%w: request is CANCELLED", apperrors.ErrInvalidTransition)).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers/"+requestID+"/submit", nil, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestRejectTransfer_RequiresReason() {
	userID := uuid.NewString()
	requestID := uuid.NewString()

	w := suite.authedRequest(http.MethodPost, "/api/v1/transfers/"+requestID+"/reject", dto.RejectTransferRequest{}, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "RejectRequest")
}

func (suite *TransferHandlerTestSuite) TestReconcileTransfer_ReportsDrift() {
	userID := uuid.NewString()
	requestID := uuid.NewString()
	itemID := uuid.NewString()

	report := &dto.ReconciliationResponse{
		RequestID:  requestID,
		Consistent: false,
		Items: []dto.ItemReconciliation{
			{ItemID: itemID, Consistent: false, Detail: "issued mismatch"},
		},
	}
	suite.mockService.On("ReconcileRequest", mock.Anything, requestID, userID).
		Return(report, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/transfers/"+requestID+"/reconcile", nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ReconciliationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Consistent)
	suite.Require().Len(resp.Items, 1)
	suite.Equal(itemID, resp.Items[0].ItemID)

	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransferHandler(t *testing.T) {
	suite.Run(t, new(TransferHandlerTestSuite))
}
