package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/internal/dto"
)

const (
	// compensationAttempts bounds the retries of the compensating period
	// delete when the budget instance write fails mid-creation.
	compensationAttempts = 3
	compensationBackoff  = 100 * time.Millisecond
)

// periodService drives the reporting-period state machine.
type periodService struct {
	BaseService
	periodRepo      portsrepo.PeriodRepository
	accountRepo     portsrepo.AccountRepository
	categoryRepo    portsrepo.CategoryRepository
	transactionRepo portsrepo.TransactionRepository
	budgetRepo      portsrepo.BudgetRepository
	archiveRepo     portsrepo.ArchiveRepository
	budgetSvc       portssvc.BudgetSvc
	reportSvc       portssvc.ReportSvc

	// creationMu serializes period creation per account. The store carries no
	// uniqueness constraint on active periods, so the check-then-insert below
	// must not interleave within this process.
	creationMu sync.Mutex
	accountMus map[string]*sync.Mutex
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(
	repos portsrepo.RepositoryProvider,
	budgetSvc portssvc.BudgetSvc,
	reportSvc portssvc.ReportSvc,
) portssvc.PeriodSvc {
	return &periodService{
		periodRepo:      repos.PeriodRepo,
		accountRepo:     repos.AccountRepo,
		categoryRepo:    repos.CategoryRepo,
		transactionRepo: repos.TransactionRepo,
		budgetRepo:      repos.BudgetRepo,
		archiveRepo:     repos.ArchiveRepo,
		budgetSvc:       budgetSvc,
		reportSvc:       reportSvc,
		accountMus:      make(map[string]*sync.Mutex),
	}
}

var _ portssvc.PeriodSvc = (*periodService)(nil)

func (s *periodService) lockAccount(accountID string) *sync.Mutex {
	s.creationMu.Lock()
	mu, ok := s.accountMus[accountID]
	if !ok {
		mu = &sync.Mutex{}
		s.accountMus[accountID] = mu
	}
	s.creationMu.Unlock()
	mu.Lock()
	return mu
}

func (s *periodService) ListPeriods(ctx context.Context, accountID string, isActive *bool) ([]domain.Period, error) {
	periods, err := s.periodRepo.ListPeriodsByAccount(ctx, accountID, isActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get period by ID: %w", err)
	}
	return period, nil
}

// GetActivePeriod returns (nil, nil) when the account has no active period.
func (s *periodService) GetActivePeriod(ctx context.Context, accountID string) (*domain.Period, error) {
	period, err := s.periodRepo.FindActivePeriod(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active period: %w", err)
	}
	return period, nil
}

// PreviewNextPeriod drafts the next period without persisting anything: start
// follows the last closed period (or is today for a fresh account), the end
// date comes from the predictor, the initial balance from the full prior
// history, and the budgets from 1:1 template expansion.
func (s *periodService) PreviewNextPeriod(ctx context.Context, accountID string) (*dto.PeriodPreviewResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account for period preview: %w", err)
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	lastClosed, err := s.periodRepo.FindLastClosedPeriod(ctx, accountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find last closed period for preview: %w", err)
	}
	if lastClosed != nil && lastClosed.EndDate != nil {
		start = lastClosed.EndDate.AddDate(0, 0, 1)
	}

	end, err := s.budgetSvc.PredictEndDate(ctx, accountID, start)
	if err != nil {
		return nil, err
	}

	initialBalance, err := s.rolloverBalance(ctx, accountID, start)
	if err != nil {
		return nil, err
	}

	drafts, err := s.budgetSvc.ExpandTemplates(ctx, accountID)
	if err != nil {
		return nil, err
	}
	budgets := make([]dto.BudgetDraftPayload, len(drafts))
	for i, d := range drafts {
		budgets[i] = dto.BudgetDraftPayload{CategoryID: d.CategoryID, AmountAllocated: d.AmountAllocated}
	}

	return &dto.PeriodPreviewResponse{
		StartDate:      dto.FormatDate(start),
		EndDate:        dto.FormatDate(end),
		InitialBalance: initialBalance,
		Budgets:        budgets,
	}, nil
}

// rolloverBalance is the balance anchor for the next period: the net result
// of the latest archived report, recomputed over its frozen window so
// backdated edits inside it stay reflected. An account with no archives yet
// falls back to the full-history derivation, which reduces to the account's
// creation-time balance when no prior transactions exist either.
func (s *periodService) rolloverBalance(ctx context.Context, accountID string, start time.Time) (decimal.Decimal, error) {
	latest, err := s.archiveRepo.FindLatestArchivedReport(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.reportSvc.DeriveInitialBalance(ctx, accountID, start)
		}
		return decimal.Zero, fmt.Errorf("failed to find latest archived report for rollover: %w", err)
	}

	totals, err := s.reportSvc.ComputeArchivedReport(ctx, latest)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.OperationsBalance, nil
}

// CreatePeriodWithBudgets persists a new active period and its budget
// instances. The two writes hit different tables with no shared transaction:
// the period row goes in first with budgets_confirmed false, and the marker is
// flipped only after the instances are written. A failed instance write
// triggers a compensating delete of the period row.
func (s *periodService) CreatePeriodWithBudgets(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.Period, error) {
	mu := s.lockAccount(req.AccountID)
	defer mu.Unlock()

	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		return nil, fmt.Errorf("failed to find account for period creation: %w", err)
	}

	if _, err := s.periodRepo.FindActivePeriod(ctx, req.AccountID); err == nil {
		return nil, apperrors.ErrActivePeriodExists
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for an existing active period: %w", err)
	}

	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewAppError(400, "invalid start_date", apperrors.ErrValidation)
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := dto.ParseDate(*req.EndDate)
		if err != nil || !parsed.After(start) {
			return nil, apperrors.NewAppError(400, "end_date must be after start_date", apperrors.ErrValidation)
		}
		endDate = &parsed
	}

	estimatedEnd := time.Time{}
	if req.EstimatedEndDate != nil {
		estimatedEnd, err = dto.ParseDate(*req.EstimatedEndDate)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid estimated_end_date", apperrors.ErrValidation)
		}
	}
	if estimatedEnd.IsZero() {
		estimatedEnd, err = s.budgetSvc.PredictEndDate(ctx, req.AccountID, start)
		if err != nil {
			return nil, err
		}
	}

	if err := s.validateBudgetDrafts(ctx, req.AccountID, req.Budgets); err != nil {
		return nil, err
	}

	now := time.Now()
	period := domain.Period{
		PeriodID:         uuid.NewString(),
		AccountID:        req.AccountID,
		StartDate:        start,
		EndDate:          endDate,
		EstimatedEndDate: estimatedEnd,
		IsActive:         true,
		BudgetsConfirmed: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	instances := make([]domain.BudgetInstance, len(req.Budgets))
	for i, b := range req.Budgets {
		instances[i] = domain.BudgetInstance{
			InstanceID:      uuid.NewString(),
			PeriodID:        period.PeriodID,
			CategoryID:      b.CategoryID,
			AmountAllocated: b.AmountAllocated,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if len(instances) > 0 {
		if err := s.budgetRepo.SaveBudgetInstances(ctx, instances); err != nil {
			s.compensatePeriodCreation(ctx, period.PeriodID)
			return nil, fmt.Errorf("failed to create budget instances for period: %w", err)
		}
	}

	if err := s.periodRepo.ConfirmPeriodBudgets(ctx, period.PeriodID, now); err != nil {
		// The data is fully written; only the marker flip failed. The period
		// stays invisible until a retry or repair flips it, which beats
		// deleting the instances the user just confirmed.
		s.LogError(ctx, err, "failed to confirm period budgets after instance write",
			slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to confirm period budgets: %w", err)
	}
	period.BudgetsConfirmed = true

	s.LogInfo(ctx, "period created",
		slog.String("period_id", period.PeriodID),
		slog.String("account_id", period.AccountID),
		slog.Int("budget_instances", len(instances)))
	return &period, nil
}

func (s *periodService) validateBudgetDrafts(ctx context.Context, accountID string, drafts []dto.BudgetDraftPayload) error {
	if len(drafts) == 0 {
		return nil
	}
	ids := make([]string, len(drafts))
	for i, d := range drafts {
		ids[i] = d.CategoryID
	}
	found, err := s.categoryRepo.FindCategoriesByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to validate budget categories: %w", err)
	}
	for _, d := range drafts {
		cat, ok := found[d.CategoryID]
		if !ok || cat.AccountID != accountID {
			return apperrors.NewAppError(400, "budget category "+d.CategoryID+" does not belong to the account", apperrors.ErrValidation)
		}
	}
	return nil
}

// compensatePeriodCreation rolls back the period row after a failed budget
// instance write. The delete is retried with backoff; if all attempts fail the
// orphan row is logged and left behind, still invisible to reads because its
// budgets_confirmed marker never flipped.
func (s *periodService) compensatePeriodCreation(ctx context.Context, periodID string) {
	var lastErr error
	for attempt := 1; attempt <= compensationAttempts; attempt++ {
		if lastErr = s.periodRepo.DeletePeriod(ctx, periodID); lastErr == nil {
			s.LogInfo(ctx, "compensating period delete succeeded",
				slog.String("period_id", periodID),
				slog.Int("attempt", attempt))
			return
		}
		time.Sleep(time.Duration(attempt) * compensationBackoff)
	}
	s.LogError(ctx, lastErr, "compensating period delete failed, orphan row left unconfirmed",
		slog.String("period_id", periodID))
}

// ClosePeriod archives the closing report and deactivates the period. The
// close is refused while the window still holds unreconciled transactions, so
// the archived bank balance is backed by statement-confirmed movements only.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period to close: %w", err)
	}
	if !period.IsActive {
		return nil, apperrors.NewAppError(400, "period is already closed", apperrors.ErrValidation)
	}

	now := time.Now()
	endDate := now.UTC().Truncate(24 * time.Hour)
	if period.EndDate != nil {
		endDate = *period.EndDate
	}

	count, err := s.transactionRepo.CountUnreconciledInRange(ctx, period.AccountID, period.StartDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count unreconciled transactions for close: %w", err)
	}
	if count > 0 {
		return nil, &apperrors.UnreconciledTransactionsError{PeriodID: periodID, Count: count}
	}

	initialBalance, err := s.reportSvc.DeriveInitialBalance(ctx, period.AccountID, period.StartDate)
	if err != nil {
		return nil, err
	}
	// The snapshot keeps the period's budget context: budgeted and remaining
	// per category, and the budget-aware projection.
	instances, err := s.budgetRepo.ListInstancesByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget instances for close: %w", err)
	}
	totals, err := s.reportSvc.ComputeWindowReport(ctx, period.AccountID, initialBalance, period.StartDate, &endDate, instances)
	if err != nil {
		return nil, err
	}

	archived := domain.ArchivedReport{
		ReportID:       uuid.NewString(),
		AccountID:      period.AccountID,
		StartDate:      period.StartDate,
		EndDate:        endDate,
		InitialBalance: initialBalance,
		Snapshot:       *totals,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.archiveRepo.SaveArchivedReport(ctx, archived); err != nil {
		return nil, fmt.Errorf("failed to archive closing report: %w", err)
	}

	if err := s.periodRepo.ClosePeriod(ctx, periodID, endDate, userID, now); err != nil {
		// The archive row is already written; the period row still says
		// active. Leave the archive in place: closing again will overwrite
		// nothing and the gate has already passed.
		s.LogError(ctx, err, "failed to deactivate period after archiving",
			slog.String("period_id", periodID),
			slog.String("report_id", archived.ReportID))
		return nil, fmt.Errorf("failed to close period: %w", err)
	}

	period.EndDate = &endDate
	period.IsActive = false
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	s.LogInfo(ctx, "period closed",
		slog.String("period_id", periodID),
		slog.String("report_id", archived.ReportID))
	return period, nil
}

// DeletePeriod removes the period and its budget instances. Transactions and
// archives are never touched here.
func (s *periodService) DeletePeriod(ctx context.Context, periodID string) error {
	if _, err := s.periodRepo.FindPeriodByID(ctx, periodID); err != nil {
		return fmt.Errorf("failed to find period to delete: %w", err)
	}
	if err := s.budgetRepo.DeleteInstancesByPeriod(ctx, periodID); err != nil {
		return fmt.Errorf("failed to delete budget instances for period: %w", err)
	}
	if err := s.periodRepo.DeletePeriod(ctx, periodID); err != nil {
		return fmt.Errorf("failed to delete period: %w", err)
	}
	return nil
}
