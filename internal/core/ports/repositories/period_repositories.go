package repositories

import (
	"context"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// PeriodRepository defines persistence operations for reporting periods.
// Reads exclude periods whose budgets were never confirmed (the interrupted
// half of the two-step creation) unless stated otherwise.
type PeriodRepository interface {
	SavePeriod(ctx context.Context, period domain.Period) error
	// ConfirmPeriodBudgets flips the budgets_confirmed saga marker after the
	// period's budget instances have been written.
	ConfirmPeriodBudgets(ctx context.Context, periodID string, updatedAt time.Time) error
	DeletePeriod(ctx context.Context, periodID string) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)
	// FindActivePeriod returns apperrors.ErrNotFound when the account has no
	// active period.
	FindActivePeriod(ctx context.Context, accountID string) (*domain.Period, error)
	// FindLastClosedPeriod returns the closed period with the latest end date.
	FindLastClosedPeriod(ctx context.Context, accountID string) (*domain.Period, error)
	// FindPeriodByStartDate returns the confirmed period whose window starts
	// on the given date, or apperrors.ErrNotFound. Archived-report reads use
	// it to recover the budget instances of the archived window.
	FindPeriodByStartDate(ctx context.Context, accountID string, start time.Time) (*domain.Period, error)
	ListPeriodsByAccount(ctx context.Context, accountID string, isActive *bool) ([]domain.Period, error)
	// ListRecentPeriods returns up to limit periods ordered by start date
	// descending, active and closed alike.
	ListRecentPeriods(ctx context.Context, accountID string, limit int) ([]domain.Period, error)
	// ClosePeriod sets end_date and flips is_active to false.
	ClosePeriod(ctx context.Context, periodID string, endDate time.Time, updatedBy string, updatedAt time.Time) error
}
