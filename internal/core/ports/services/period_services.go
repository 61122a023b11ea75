package services

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/CrokNoks/account-sub000/internal/dto"
)

// PeriodSvc drives the reporting-period state machine: preview, creation with
// budget instances, reconciliation-gated close with archival, and deletion.
type PeriodSvc interface {
	ListPeriods(ctx context.Context, accountID string, isActive *bool) ([]domain.Period, error)
	GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)
	// GetActivePeriod returns (nil, nil) when the account has no active
	// period; the HTTP surface maps that to a null body.
	GetActivePeriod(ctx context.Context, accountID string) (*domain.Period, error)
	// PreviewNextPeriod produces a draft for the next period without
	// persisting anything.
	PreviewNextPeriod(ctx context.Context, accountID string) (*dto.PeriodPreviewResponse, error)
	CreatePeriodWithBudgets(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.Period, error)
	// ClosePeriod enforces the reconciliation gate server-side, archives the
	// closing report, and deactivates the period.
	ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.Period, error)
	DeletePeriod(ctx context.Context, periodID string) error
}
