package repositories

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// ArchiveRepository defines persistence operations for archived period reports.
// Rows are immutable once written; delete removes the row only and never
// touches transactions.
type ArchiveRepository interface {
	SaveArchivedReport(ctx context.Context, report domain.ArchivedReport) error
	FindArchivedReportByID(ctx context.Context, reportID string) (*domain.ArchivedReport, error)
	// FindLatestArchivedReport returns the archive with the latest end date,
	// or apperrors.ErrNotFound when the account has no archives yet.
	FindLatestArchivedReport(ctx context.Context, accountID string) (*domain.ArchivedReport, error)
	ListArchivedReportsByAccount(ctx context.Context, accountID string) ([]domain.ArchivedReport, error)
	DeleteArchivedReport(ctx context.Context, reportID string) error
}
