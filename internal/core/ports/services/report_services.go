package services

import (
	"context"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportSvc turns a period or an arbitrary date window into a complete set of
// balance figures. Computation itself is pure; this service only assembles the
// inputs (transactions, categories, budget instances, initial balance).
type ReportSvc interface {
	// ComputePeriodReport derives the period's initial balance from the full
	// transaction history preceding its start and computes the window report.
	ComputePeriodReport(ctx context.Context, periodID string) (*domain.ReportTotals, *domain.Period, error)
	// ComputeWindowReport computes figures for [start, end] with a
	// caller-supplied initial balance and budget instances. Pass nil instances
	// for a window with no budget context.
	ComputeWindowReport(ctx context.Context, accountID string, initialBalance decimal.Decimal, start time.Time, end *time.Time, instances []domain.BudgetInstance) (*domain.ReportTotals, error)
	// ComputeArchivedReport recomputes the figures for an archived window,
	// trusting the frozen balance anchor instead of re-deriving it. The
	// matching period is resolved by (account, start date) to recover the
	// window's budget instances; a deleted period yields a budget-less report.
	ComputeArchivedReport(ctx context.Context, report *domain.ArchivedReport) (*domain.ReportTotals, error)
	// DeriveInitialBalance returns account.initial_balance plus the signed sum
	// of all transactions dated strictly before start.
	DeriveInitialBalance(ctx context.Context, accountID string, start time.Time) (decimal.Decimal, error)
}
