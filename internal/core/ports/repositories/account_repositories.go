package repositories

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts. Accounts are
// provisioned outside this service; only reads happen here. The backing store
// enforces row visibility; this layer only shapes the queries.
type AccountRepository interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}
