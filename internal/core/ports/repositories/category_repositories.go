package repositories

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// CategoryRepository defines read operations for categories. Category CRUD
// itself lives outside this core; reports and budget validation only read.
type CategoryRepository interface {
	ListCategoriesByAccount(ctx context.Context, accountID string) ([]domain.Category, error)
	FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error)
}
