package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/internal/dto"
	"github.com/CrokNoks/account-sub000/internal/handlers"
	"github.com/CrokNoks/account-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, accountID string, isActive *bool) ([]domain.Period, error) {
	args := m.Called(ctx, accountID, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}
func (m *MockPeriodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}
func (m *MockPeriodService) GetActivePeriod(ctx context.Context, accountID string) (*domain.Period, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}
func (m *MockPeriodService) PreviewNextPeriod(ctx context.Context, accountID string) (*dto.PeriodPreviewResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PeriodPreviewResponse), args.Error(1)
}
func (m *MockPeriodService) CreatePeriodWithBudgets(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.Period, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}
func (m *MockPeriodService) ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}
func (m *MockPeriodService) DeletePeriod(ctx context.Context, periodID string) error {
	args := m.Called(ctx, periodID)
	return args.Error(0)
}

var _ portssvc.PeriodSvc = (*MockPeriodService)(nil)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ComputePeriodReport(ctx context.Context, periodID string) (*domain.ReportTotals, *domain.Period, error) {
	args := m.Called(ctx, periodID)
	var totals *domain.ReportTotals
	if args.Get(0) != nil {
		totals = args.Get(0).(*domain.ReportTotals)
	}
	var period *domain.Period
	if args.Get(1) != nil {
		period = args.Get(1).(*domain.Period)
	}
	return totals, period, args.Error(2)
}
func (m *MockReportService) ComputeWindowReport(ctx context.Context, accountID string, initialBalance decimal.Decimal, start time.Time, end *time.Time, instances []domain.BudgetInstance) (*domain.ReportTotals, error) {
	args := m.Called(ctx, accountID, initialBalance, start, end, instances)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportTotals), args.Error(1)
}
func (m *MockReportService) ComputeArchivedReport(ctx context.Context, report *domain.ArchivedReport) (*domain.ReportTotals, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportTotals), args.Error(1)
}
func (m *MockReportService) DeriveInitialBalance(ctx context.Context, accountID string, start time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, start)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.ReportSvc = (*MockReportService)(nil)

// --- Test Suite ---
type PeriodHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockPeriodService *MockPeriodService
	mockReportService *MockReportService
	jwtSecret         string
}

func (suite *PeriodHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
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

func (suite *PeriodHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Same custom binding main registers at startup.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateonly", dto.DateOnly)
	}

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPeriodService = new(MockPeriodService)
	suite.mockReportService = new(MockReportService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPeriodRoutes(v1, suite.mockPeriodService, suite.mockReportService)
}

func (suite *PeriodHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *PeriodHandlerTestSuite) TestGetActivePeriod_NoneReturnsNullBody() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockPeriodService.On("GetActivePeriod", mock.Anything, accountID).Return(nil, nil).Once()

	w := suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/periods/active?account_id=%s", accountID), nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("null", w.Body.String())
	suite.mockPeriodService.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestCreatePeriod_Success() {
	accountID := uuid.NewString()
	userID := uuid.NewString()
	created := &domain.Period{
		PeriodID:         uuid.NewString(),
		AccountID:        accountID,
		StartDate:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EstimatedEndDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		IsActive:         true,
	}

	suite.mockPeriodService.On("CreatePeriodWithBudgets",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreatePeriodRequest) bool {
			return req.AccountID == accountID && req.StartDate == "2024-04-01"
		}),
		userID, // expect the subject from the token
	).Return(created, nil).Once()

	body, _ := json.Marshal(dto.CreatePeriodRequest{
		AccountID: accountID,
		StartDate: "2024-04-01",
		Budgets: []dto.BudgetDraftPayload{
			{CategoryID: uuid.NewString(), AmountAllocated: decimal.NewFromInt(100)},
		},
	})
	w := suite.authedRequest(http.MethodPost, "/api/v1/periods", body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PeriodResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.PeriodID, resp.PeriodID)
	suite.True(resp.IsActive)
	suite.mockPeriodService.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestCreatePeriod_ActiveConflictMapsTo409() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockPeriodService.On("CreatePeriodWithBudgets", mock.Anything, mock.Anything, userID).
		Return(nil, apperrors.ErrActivePeriodExists).Once()

	body, _ := json.Marshal(dto.CreatePeriodRequest{AccountID: accountID, StartDate: "2024-04-01"})
	w := suite.authedRequest(http.MethodPost, "/api/v1/periods", body, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockPeriodService.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestClosePeriod_GateMapsTo409WithCount() {
	periodID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockPeriodService.On("ClosePeriod", mock.Anything, periodID, userID).
		Return(nil, &apperrors.UnreconciledTransactionsError{PeriodID: periodID, Count: 2}).Once()

	w := suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/periods/%s/close", periodID), nil, userID)

	suite.Equal(http.StatusConflict, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(float64(2), resp["unreconciled_count"])
	suite.mockPeriodService.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestGetPeriodReport_NotFound() {
	periodID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockReportService.On("ComputePeriodReport", mock.Anything, periodID).
		Return(nil, nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/periods/%s/report", periodID), nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockReportService.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestListPeriods_InvalidIsActiveRejected() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	w := suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/periods?account_id=%s&is_active=nope", accountID), nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPeriodService.AssertNotCalled(suite.T(), "ListPeriods", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodHandlerTestSuite) TestListPeriods_NumericIsActiveFiltersActive() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockPeriodService.On("ListPeriods", mock.Anything, accountID, mock.MatchedBy(func(isActive *bool) bool {
		return isActive != nil && *isActive
	})).Return([]domain.Period{}, nil).Once()

	w := suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/periods?account_id=%s&is_active=1", accountID), nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPeriodService.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestListPeriods_MissingAccountID() {
	userID := uuid.NewString()

	w := suite.authedRequest(http.MethodGet, "/api/v1/periods", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPeriodService.AssertNotCalled(suite.T(), "ListPeriods", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodHandlerTestSuite) TestUnauthenticatedRequestRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/periods/active?account_id=x", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestPeriodHandler(t *testing.T) {
	suite.Run(t, new(PeriodHandlerTestSuite))
}
