package repositories

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// BudgetRepository defines persistence operations for budget templates and
// period budget instances. Templates are read-only here; the core only expands
// them.
type BudgetRepository interface {
	ListTemplatesByAccount(ctx context.Context, accountID string) ([]domain.BudgetTemplate, error)
	SaveBudgetInstances(ctx context.Context, instances []domain.BudgetInstance) error
	ListInstancesByPeriod(ctx context.Context, periodID string) ([]domain.BudgetInstance, error)
	DeleteInstancesByPeriod(ctx context.Context, periodID string) error
}
