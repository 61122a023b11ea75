package services

import (
	"context"
	"fmt"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
)

// archiveService serves closed-period reports. An archive row freezes only the
// window bounds and the initial balance; every read below recomputes the
// figures from the live ledger so backdated edits, category renames and
// recolors stay reflected in historical views.
type archiveService struct {
	BaseService
	archiveRepo portsrepo.ArchiveRepository
	reportSvc   portssvc.ReportSvc
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(archiveRepo portsrepo.ArchiveRepository, reportSvc portssvc.ReportSvc) portssvc.ArchiveSvc {
	return &archiveService{
		archiveRepo: archiveRepo,
		reportSvc:   reportSvc,
	}
}

var _ portssvc.ArchiveSvc = (*archiveService)(nil)

func (s *archiveService) ListReports(ctx context.Context, accountID string) ([]domain.ArchivedReport, error) {
	reports, err := s.archiveRepo.ListArchivedReportsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived reports: %w", err)
	}
	return reports, nil
}

// GetReport returns the archive row together with freshly recomputed figures
// for its frozen window, budget instances included. The frozen initial
// balance is passed through as the balance anchor instead of being
// re-derived.
func (s *archiveService) GetReport(ctx context.Context, reportID string) (*domain.ArchivedReport, *domain.ReportTotals, error) {
	report, err := s.archiveRepo.FindArchivedReportByID(ctx, reportID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find archived report: %w", err)
	}

	totals, err := s.reportSvc.ComputeArchivedReport(ctx, report)
	if err != nil {
		return nil, nil, err
	}
	return report, totals, nil
}

// DeleteReport removes the archive row only. Transactions stay in place, and
// later periods re-derive their initial balance from the full history, so the
// rollover chain heals itself.
func (s *archiveService) DeleteReport(ctx context.Context, reportID string) error {
	if err := s.archiveRepo.DeleteArchivedReport(ctx, reportID); err != nil {
		return fmt.Errorf("failed to delete archived report: %w", err)
	}
	return nil
}

// Evolution returns one recomputed operations balance per archive, ordered by
// start date ascending.
func (s *archiveService) Evolution(ctx context.Context, accountID string) ([]domain.EvolutionPoint, error) {
	reports, err := s.archiveRepo.ListArchivedReportsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived reports for evolution: %w", err)
	}

	points := make([]domain.EvolutionPoint, 0, len(reports))
	for i := range reports {
		report := &reports[i]
		totals, err := s.reportSvc.ComputeArchivedReport(ctx, report)
		if err != nil {
			return nil, err
		}
		points = append(points, domain.EvolutionPoint{
			ReportID:          report.ReportID,
			StartDate:         report.StartDate,
			EndDate:           report.EndDate,
			InitialBalance:    report.InitialBalance,
			OperationsBalance: totals.OperationsBalance,
		})
	}
	return points, nil
}
