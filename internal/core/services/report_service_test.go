package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockCatRepo     *MockCategoryRepository
	mockTxnRepo     *MockTransactionRepository
	mockPeriodRepo  *MockPeriodRepository
	mockBudgetRepo  *MockBudgetRepository
	service         portssvc.ReportSvc
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCatRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewReportService(
		suite.mockAccountRepo,
		suite.mockCatRepo,
		suite.mockTxnRepo,
		suite.mockPeriodRepo,
		suite.mockBudgetRepo,
	)
}

// The initial balance is the account's creation-time balance plus everything
// dated strictly before the window, so backdated edits stay reflected.
func (suite *ReportServiceTestSuite) TestDeriveInitialBalance_SumsFullPriorHistory() {
	ctx := context.Background()
	accountID := uuid.NewString()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, InitialBalance: decimal.NewFromInt(100)}, nil).Once()
	suite.mockTxnRepo.On("SumAmountsBefore", ctx, accountID, start).
		Return(decimal.NewFromInt(-25), nil).Once()

	balance, err := suite.service.DeriveInitialBalance(ctx, accountID, start)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(75)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestComputeWindowReport_AppliesNoBudgetContext() {
	ctx := context.Background()
	accountID := uuid.NewString()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	initial := decimal.NewFromInt(100)
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: accountID, Amount: decimal.NewFromInt(50), Date: start, Reconciled: true},
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, accountID, start, &end).Return(txns, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByAccount", ctx, accountID).Return([]domain.Category{}, nil).Once()

	totals, err := suite.service.ComputeWindowReport(ctx, accountID, initial, start, &end, nil)

	suite.Require().NoError(err)
	suite.True(totals.BankBalance.Equal(decimal.NewFromInt(150)))
	suite.True(totals.OperationsBalance.Equal(decimal.NewFromInt(150)))
	suite.Zero(totals.UnreconciledCount)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "ListInstancesByPeriod", mock.Anything, mock.Anything)
}

// An archived-report read recovers the window's budget instances through the
// matching period, so budgeted and remaining survive the close.
func (suite *ReportServiceTestSuite) TestComputeArchivedReport_RecoversBudgetContext() {
	ctx := context.Background()
	periodID := uuid.NewString()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	report := &domain.ArchivedReport{
		ReportID:       uuid.NewString(),
		AccountID:      accountID,
		StartDate:      start,
		EndDate:        end,
		InitialBalance: decimal.NewFromInt(100),
	}
	instances := []domain.BudgetInstance{
		{InstanceID: uuid.NewString(), PeriodID: periodID, CategoryID: categoryID, AmountAllocated: decimal.NewFromInt(100)},
	}
	categories := []domain.Category{
		{CategoryID: categoryID, AccountID: accountID, Name: "Food", Type: domain.CategoryExpense},
	}
	transactions := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: accountID, CategoryID: &categoryID,
			Amount: decimal.NewFromInt(-120), Date: start.AddDate(0, 0, 10), Reconciled: true},
	}

	suite.mockPeriodRepo.On("FindPeriodByStartDate", ctx, accountID, start).
		Return(&domain.Period{PeriodID: periodID, AccountID: accountID, StartDate: start}, nil).Once()
	suite.mockBudgetRepo.On("ListInstancesByPeriod", ctx, periodID).Return(instances, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, accountID, start, &report.EndDate).
		Return(transactions, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByAccount", ctx, accountID).Return(categories, nil).Once()

	totals, err := suite.service.ComputeArchivedReport(ctx, report)

	suite.Require().NoError(err)
	suite.Require().Len(totals.Categories, 1)
	suite.True(totals.Categories[0].Budgeted.Equal(decimal.NewFromInt(100)))
	suite.True(totals.Categories[0].Remaining.Equal(decimal.NewFromInt(-20)))
	suite.True(totals.ProjectedBalance.Equal(decimal.NewFromInt(-20)))
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestComputeArchivedReport_DeletedPeriodDropsBudgetContext() {
	ctx := context.Background()
	accountID := uuid.NewString()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	report := &domain.ArchivedReport{
		ReportID:       uuid.NewString(),
		AccountID:      accountID,
		StartDate:      start,
		EndDate:        time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		InitialBalance: decimal.NewFromInt(100),
	}

	suite.mockPeriodRepo.On("FindPeriodByStartDate", ctx, accountID, start).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, accountID, start, &report.EndDate).
		Return([]domain.Transaction{}, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByAccount", ctx, accountID).Return([]domain.Category{}, nil).Once()

	totals, err := suite.service.ComputeArchivedReport(ctx, report)

	suite.Require().NoError(err)
	suite.True(totals.OperationsBalance.Equal(decimal.NewFromInt(100)))
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "ListInstancesByPeriod", mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestComputePeriodReport_LoadsBudgetInstances() {
	ctx := context.Background()
	periodID := uuid.NewString()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	period := &domain.Period{PeriodID: periodID, AccountID: accountID, StartDate: start, IsActive: true}
	instances := []domain.BudgetInstance{
		{InstanceID: uuid.NewString(), PeriodID: periodID, CategoryID: categoryID, AmountAllocated: decimal.NewFromInt(200)},
	}
	categories := []domain.Category{
		{CategoryID: categoryID, AccountID: accountID, Name: "Food", Type: domain.CategoryExpense},
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, periodID).Return(period, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, InitialBalance: decimal.NewFromInt(500)}, nil).Once()
	suite.mockTxnRepo.On("SumAmountsBefore", ctx, accountID, start).Return(decimal.Zero, nil).Once()
	suite.mockBudgetRepo.On("ListInstancesByPeriod", ctx, periodID).Return(instances, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, accountID, start, (*time.Time)(nil)).
		Return([]domain.Transaction{}, nil).Once()
	suite.mockCatRepo.On("ListCategoriesByAccount", ctx, accountID).Return(categories, nil).Once()

	totals, got, err := suite.service.ComputePeriodReport(ctx, periodID)

	suite.Require().NoError(err)
	suite.Equal(periodID, got.PeriodID)
	suite.Require().Len(totals.Categories, 1)
	suite.True(totals.Categories[0].Budgeted.Equal(decimal.NewFromInt(200)))
	// No spending yet: projection books the full allocation.
	suite.True(totals.ProjectedBalance.Equal(decimal.NewFromInt(300)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
