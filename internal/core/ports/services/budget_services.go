package services

import (
	"context"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// BudgetSvc expands account budget templates into period allocations and
// predicts the end date of a new period.
type BudgetSvc interface {
	// ExpandTemplates maps each of the account's templates 1:1 to a draft
	// instance, using amount_base as the allocation.
	ExpandTemplates(ctx context.Context, accountID string) ([]domain.BudgetInstanceDraft, error)
	// PredictEndDate proposes an end date for a period starting at start.
	PredictEndDate(ctx context.Context, accountID string, start time.Time) (time.Time, error)
}
