package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
)

const (
	// defaultPeriodLength is the provisional period duration used until the
	// statistical predictor lands.
	defaultPeriodLength = 30 * 24 * time.Hour

	// predictionHistorySize bounds how many recent periods the predictor
	// inspects.
	predictionHistorySize = 5
)

// budgetService expands budget templates into period allocations and predicts
// period end dates.
type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepository
	periodRepo portsrepo.PeriodRepository
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepository, periodRepo portsrepo.PeriodRepository) portssvc.BudgetSvc {
	return &budgetService{
		budgetRepo: budgetRepo,
		periodRepo: periodRepo,
	}
}

var _ portssvc.BudgetSvc = (*budgetService)(nil)

// ExpandTemplates maps every template of the account 1:1 to a draft instance,
// carrying amount_base over as the allocation. Fixed and variable templates
// are treated identically here; the flag only matters to template editing.
func (s *budgetService) ExpandTemplates(ctx context.Context, accountID string) ([]domain.BudgetInstanceDraft, error) {
	templates, err := s.budgetRepo.ListTemplatesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget templates for expansion: %w", err)
	}

	drafts := make([]domain.BudgetInstanceDraft, len(templates))
	for i, tpl := range templates {
		drafts[i] = domain.BudgetInstanceDraft{
			CategoryID:      tpl.CategoryID,
			AmountAllocated: tpl.AmountBase,
		}
	}
	return drafts, nil
}

// PredictEndDate proposes an end date for a period starting at start.
//
// The intended model infers the account's payday cadence from the length of
// its recent periods. The history fetch is wired, but the inference is not
// implemented yet: the returned date is always start plus thirty days.
// TODO: replace the fixed offset with a median over the fetched history.
func (s *budgetService) PredictEndDate(ctx context.Context, accountID string, start time.Time) (time.Time, error) {
	recent, err := s.periodRepo.ListRecentPeriods(ctx, accountID, predictionHistorySize)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to list recent periods for end date prediction: %w", err)
	}
	s.LogDebug(ctx, "predicting period end date",
		slog.String("account_id", accountID),
		slog.Int("history_size", len(recent)))

	return start.Add(defaultPeriodLength), nil
}
