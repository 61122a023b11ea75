package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	"github.com/CrokNoks/account-sub000/internal/models"
	"github.com/CrokNoks/account-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for reporting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, account_id, start_date, end_date, estimated_end_date, is_active, budgets_confirmed, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row interface{ Scan(dest ...any) error }) (models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.AccountID,
		&m.StartDate,
		&m.EndDate,
		&m.EstimatedEndDate,
		&m.IsActive,
		&m.BudgetsConfirmed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new period row, typically with budgets_confirmed=false
// until the period's budget instances have been written.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.AccountID,
		m.StartDate,
		m.EndDate,
		m.EstimatedEndDate,
		m.IsActive,
		m.BudgetsConfirmed,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert period "+m.PeriodID, err)
	}
	return nil
}

// ConfirmPeriodBudgets flips the budgets_confirmed saga marker.
func (r *PgxPeriodRepository) ConfirmPeriodBudgets(ctx context.Context, periodID string, updatedAt time.Time) error {
	query := `
		UPDATE periods
		SET budgets_confirmed = true, last_updated_at = $2
		WHERE period_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, periodID, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to confirm budgets for period "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("period " + periodID + " not found for confirmation")
	}
	return nil
}

// DeletePeriod removes a period row. Used both for explicit deletion and as
// the compensating action of the two-step creation.
func (r *PgxPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM periods WHERE period_id = $1;`, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete period "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("period " + periodID + " not found for deletion")
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID, confirmed or not: the direct
// fetch is what an operator uses to inspect an interrupted creation.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1;`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period by ID "+periodID, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// FindActivePeriod returns the account's active, confirmed period.
func (r *PgxPeriodRepository) FindActivePeriod(ctx context.Context, accountID string) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE account_id = $1 AND is_active = true AND budgets_confirmed = true
		ORDER BY start_date DESC
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active period for account "+accountID, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// FindLastClosedPeriod returns the closed period with the latest end date.
func (r *PgxPeriodRepository) FindLastClosedPeriod(ctx context.Context, accountID string) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE account_id = $1 AND is_active = false AND end_date IS NOT NULL AND budgets_confirmed = true
		ORDER BY end_date DESC
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find last closed period for account "+accountID, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// FindPeriodByStartDate returns the confirmed period starting on the given
// date.
func (r *PgxPeriodRepository) FindPeriodByStartDate(ctx context.Context, accountID string, start time.Time) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE account_id = $1 AND start_date = $2 AND budgets_confirmed = true
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, accountID, start))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period by start date for account "+accountID, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// ListPeriodsByAccount retrieves the account's confirmed periods, optionally
// filtered by active state, newest first.
func (r *PgxPeriodRepository) ListPeriodsByAccount(ctx context.Context, accountID string, isActive *bool) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE account_id = $1 AND budgets_confirmed = true`
	args := []any{accountID}
	if isActive != nil {
		query += ` AND is_active = $2`
		args = append(args, *isActive)
	}
	query += ` ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for account "+accountID, err)
	}
	defer rows.Close()

	periods := []models.Period{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row for account "+accountID, err)
		}
		periods = append(periods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows for account "+accountID, err)
	}

	return mapping.ToDomainPeriodSlice(periods), nil
}

// ListRecentPeriods returns up to limit confirmed periods ordered by start
// date descending.
func (r *PgxPeriodRepository) ListRecentPeriods(ctx context.Context, accountID string, limit int) ([]domain.Period, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE account_id = $1 AND budgets_confirmed = true
		ORDER BY start_date DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query recent periods for account "+accountID, err)
	}
	defer rows.Close()

	periods := []models.Period{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recent period row for account "+accountID, err)
		}
		periods = append(periods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating recent period rows for account "+accountID, err)
	}

	return mapping.ToDomainPeriodSlice(periods), nil
}

// ClosePeriod sets the end date and deactivates the period. The period's
// transactions are never touched.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, endDate time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE periods
		SET is_active = false, end_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, periodID, endDate, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close period "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("period " + periodID + " not found for close")
	}
	return nil
}
