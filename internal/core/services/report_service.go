package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/internal/utils/reporting"
	"github.com/shopspring/decimal"
)

// reportService assembles the inputs for report computation and delegates the
// arithmetic to the pure reporting package.
type reportService struct {
	BaseService
	accountRepo     portsrepo.AccountRepository
	categoryRepo    portsrepo.CategoryRepository
	transactionRepo portsrepo.TransactionRepository
	periodRepo      portsrepo.PeriodRepository
	budgetRepo      portsrepo.BudgetRepository
}

// NewReportService creates a new ReportService.
func NewReportService(
	accountRepo portsrepo.AccountRepository,
	categoryRepo portsrepo.CategoryRepository,
	transactionRepo portsrepo.TransactionRepository,
	periodRepo portsrepo.PeriodRepository,
	budgetRepo portsrepo.BudgetRepository,
) portssvc.ReportSvc {
	return &reportService{
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		periodRepo:      periodRepo,
		budgetRepo:      budgetRepo,
	}
}

var _ portssvc.ReportSvc = (*reportService)(nil)

// DeriveInitialBalance returns the account's creation-time balance plus the
// signed sum of every transaction dated strictly before start. Deriving from
// the full history instead of chaining closed periods keeps the figure correct
// after backdated edits.
func (s *reportService) DeriveInitialBalance(ctx context.Context, accountID string, start time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account for initial balance derivation: %w", err)
	}

	priorSum, err := s.transactionRepo.SumAmountsBefore(ctx, accountID, start)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum prior transactions for initial balance derivation: %w", err)
	}

	return account.InitialBalance.Add(priorSum), nil
}

// ComputeWindowReport computes the full report for [start, end] with a
// caller-supplied initial balance and budget instances.
func (s *reportService) ComputeWindowReport(ctx context.Context, accountID string, initialBalance decimal.Decimal, start time.Time, end *time.Time, instances []domain.BudgetInstance) (*domain.ReportTotals, error) {
	return s.computeWindow(ctx, accountID, initialBalance, start, end, instances)
}

// ComputeArchivedReport recomputes an archived window from the live ledger,
// anchored on the frozen initial balance. The archive row does not keep its
// period id, so the period is resolved by (account, start date); when the
// period row is gone the report is computed without budget context.
func (s *reportService) ComputeArchivedReport(ctx context.Context, report *domain.ArchivedReport) (*domain.ReportTotals, error) {
	var instances []domain.BudgetInstance
	period, err := s.periodRepo.FindPeriodByStartDate(ctx, report.AccountID, report.StartDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve period for archived report: %w", err)
	}
	if period != nil {
		instances, err = s.budgetRepo.ListInstancesByPeriod(ctx, period.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("failed to list budget instances for archived report: %w", err)
		}
	}

	return s.computeWindow(ctx, report.AccountID, report.InitialBalance, report.StartDate, &report.EndDate, instances)
}

// ComputePeriodReport derives the period's initial balance and computes its
// window report, budget instances included.
func (s *reportService) ComputePeriodReport(ctx context.Context, periodID string) (*domain.ReportTotals, *domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find period for report: %w", err)
	}

	initialBalance, err := s.DeriveInitialBalance(ctx, period.AccountID, period.StartDate)
	if err != nil {
		return nil, nil, err
	}

	instances, err := s.budgetRepo.ListInstancesByPeriod(ctx, periodID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list budget instances for report: %w", err)
	}

	totals, err := s.computeWindow(ctx, period.AccountID, initialBalance, period.StartDate, period.EndDate, instances)
	if err != nil {
		return nil, nil, err
	}
	return totals, period, nil
}

func (s *reportService) computeWindow(ctx context.Context, accountID string, initialBalance decimal.Decimal, start time.Time, end *time.Time, instances []domain.BudgetInstance) (*domain.ReportTotals, error) {
	transactions, err := s.transactionRepo.ListTransactionsInRange(ctx, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for report window: %w", err)
	}

	categories, err := s.categoryRepo.ListCategoriesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for report window: %w", err)
	}

	totals := reporting.Compute(transactions, categories, instances, initialBalance, start, end)
	return &totals, nil
}
