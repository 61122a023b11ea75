package services_test

import (
	"context"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListCategoriesByAccount(ctx context.Context, accountID string) ([]domain.Category, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	args := m.Called(ctx, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Category), args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransferPair(ctx context.Context, outflow, inflow domain.Transaction) error {
	args := m.Called(ctx, outflow, inflow)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsInRange(ctx context.Context, accountID string, from time.Time, to *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, from, to, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SumAmountsBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) CountUnreconciledInRange(ctx context.Context, accountID string, from, to time.Time) (int, error) {
	args := m.Called(ctx, accountID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) SetReconciled(ctx context.Context, transactionID string, reconciled bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, reconciled, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) SetCategoryIfUncategorized(ctx context.Context, transactionID, categoryID, updatedBy string, updatedAt time.Time) (bool, error) {
	args := m.Called(ctx, transactionID, categoryID, updatedBy, updatedAt)
	return args.Bool(0), args.Error(1)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) ConfirmPeriodBudgets(ctx context.Context, periodID string, updatedAt time.Time) error {
	args := m.Called(ctx, periodID, updatedAt)
	return args.Error(0)
}

func (m *MockPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	args := m.Called(ctx, periodID)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindActivePeriod(ctx context.Context, accountID string) (*domain.Period, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindLastClosedPeriod(ctx context.Context, accountID string) (*domain.Period, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByStartDate(ctx context.Context, accountID string, start time.Time) (*domain.Period, error) {
	args := m.Called(ctx, accountID, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodsByAccount(ctx context.Context, accountID string, isActive *bool) ([]domain.Period, error) {
	args := m.Called(ctx, accountID, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListRecentPeriods(ctx context.Context, accountID string, limit int) ([]domain.Period, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, periodID string, endDate time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, periodID, endDate, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) ListTemplatesByAccount(ctx context.Context, accountID string) ([]domain.BudgetTemplate, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetTemplate), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudgetInstances(ctx context.Context, instances []domain.BudgetInstance) error {
	args := m.Called(ctx, instances)
	return args.Error(0)
}

func (m *MockBudgetRepository) ListInstancesByPeriod(ctx context.Context, periodID string) ([]domain.BudgetInstance, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetInstance), args.Error(1)
}

func (m *MockBudgetRepository) DeleteInstancesByPeriod(ctx context.Context, periodID string) error {
	args := m.Called(ctx, periodID)
	return args.Error(0)
}

// --- Mock ArchiveRepository ---

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) SaveArchivedReport(ctx context.Context, report domain.ArchivedReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockArchiveRepository) FindArchivedReportByID(ctx context.Context, reportID string) (*domain.ArchivedReport, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArchivedReport), args.Error(1)
}

func (m *MockArchiveRepository) FindLatestArchivedReport(ctx context.Context, accountID string) (*domain.ArchivedReport, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArchivedReport), args.Error(1)
}

func (m *MockArchiveRepository) ListArchivedReportsByAccount(ctx context.Context, accountID string) ([]domain.ArchivedReport, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchivedReport), args.Error(1)
}

func (m *MockArchiveRepository) DeleteArchivedReport(ctx context.Context, reportID string) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

// --- Mock BudgetSvc ---

type MockBudgetSvc struct {
	mock.Mock
}

func (m *MockBudgetSvc) ExpandTemplates(ctx context.Context, accountID string) ([]domain.BudgetInstanceDraft, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetInstanceDraft), args.Error(1)
}

func (m *MockBudgetSvc) PredictEndDate(ctx context.Context, accountID string, start time.Time) (time.Time, error) {
	args := m.Called(ctx, accountID, start)
	return args.Get(0).(time.Time), args.Error(1)
}

// --- Mock ReportSvc ---

type MockReportSvc struct {
	mock.Mock
}

func (m *MockReportSvc) ComputePeriodReport(ctx context.Context, periodID string) (*domain.ReportTotals, *domain.Period, error) {
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

func (m *MockReportSvc) ComputeWindowReport(ctx context.Context, accountID string, initialBalance decimal.Decimal, start time.Time, end *time.Time, instances []domain.BudgetInstance) (*domain.ReportTotals, error) {
	args := m.Called(ctx, accountID, initialBalance, start, end, instances)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportTotals), args.Error(1)
}

func (m *MockReportSvc) ComputeArchivedReport(ctx context.Context, report *domain.ArchivedReport) (*domain.ReportTotals, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportTotals), args.Error(1)
}

func (m *MockReportSvc) DeriveInitialBalance(ctx context.Context, accountID string, start time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, start)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock ClassifierSvc ---

type MockClassifierSvc struct {
	mock.Mock
}

func (m *MockClassifierSvc) Predict(ctx context.Context, features domain.ClassifierFeatures) (*domain.CategoryPrediction, error) {
	args := m.Called(ctx, features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryPrediction), args.Error(1)
}

// --- Mock ClassificationDispatcher ---

type MockClassificationDispatcher struct {
	mock.Mock
}

func (m *MockClassificationDispatcher) DispatchClassification(ctx context.Context, features domain.ClassifierFeatures) error {
	args := m.Called(ctx, features)
	return args.Error(0)
}
