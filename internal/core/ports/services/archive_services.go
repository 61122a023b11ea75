package services

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// ArchiveSvc serves closed-period report snapshots. Reads recompute every
// figure from the live ledger using the archive's frozen date bounds; only the
// frozen initial balance is trusted verbatim.
type ArchiveSvc interface {
	ListReports(ctx context.Context, accountID string) ([]domain.ArchivedReport, error)
	GetReport(ctx context.Context, reportID string) (*domain.ArchivedReport, *domain.ReportTotals, error)
	// DeleteReport removes the archive row only; the caller owns recomputing
	// the rollover chain afterwards.
	DeleteReport(ctx context.Context, reportID string) error
	// Evolution returns the per-archive operations balances for history
	// analytics, ordered by start date ascending.
	Evolution(ctx context.Context, accountID string) ([]domain.EvolutionPoint, error)
}
