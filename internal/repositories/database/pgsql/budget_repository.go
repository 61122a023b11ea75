package pgsql

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	"github.com/CrokNoks/account-sub000/internal/models"
	"github.com/CrokNoks/account-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget templates and
// period budget instances.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

// ListTemplatesByAccount retrieves all budget templates of the account.
func (r *PgxBudgetRepository) ListTemplatesByAccount(ctx context.Context, accountID string) ([]domain.BudgetTemplate, error) {
	query := `
		SELECT template_id, account_id, category_id, amount_base, is_fixed, created_at, created_by, last_updated_at, last_updated_by
		FROM budget_templates
		WHERE account_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budget templates for account "+accountID, err)
	}
	defer rows.Close()

	templates := []domain.BudgetTemplate{}
	for rows.Next() {
		var m models.BudgetTemplate
		err := rows.Scan(
			&m.TemplateID,
			&m.AccountID,
			&m.CategoryID,
			&m.AmountBase,
			&m.IsFixed,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget template row for account "+accountID, err)
		}
		templates = append(templates, mapping.ToDomainBudgetTemplate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget template rows for account "+accountID, err)
	}

	return templates, nil
}

// SaveBudgetInstances bulk-inserts the period's budget instances.
func (r *PgxBudgetRepository) SaveBudgetInstances(ctx context.Context, instances []domain.BudgetInstance) error {
	if len(instances) == 0 {
		return nil
	}

	query := `
		INSERT INTO budget_instances (instance_id, period_id, category_id, amount_allocated, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, inst := range instances {
		m := mapping.ToModelBudgetInstance(inst)
		batch.Queue(query,
			m.InstanceID,
			m.PeriodID,
			m.CategoryID,
			m.AmountAllocated,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert budget instances for period "+instances[0].PeriodID, err)
	}
	return nil
}

// ListInstancesByPeriod retrieves the period's budget instances.
func (r *PgxBudgetRepository) ListInstancesByPeriod(ctx context.Context, periodID string) ([]domain.BudgetInstance, error) {
	query := `
		SELECT instance_id, period_id, category_id, amount_allocated, created_at, created_by, last_updated_at, last_updated_by
		FROM budget_instances
		WHERE period_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budget instances for period "+periodID, err)
	}
	defer rows.Close()

	instances := []models.BudgetInstance{}
	for rows.Next() {
		var m models.BudgetInstance
		err := rows.Scan(
			&m.InstanceID,
			&m.PeriodID,
			&m.CategoryID,
			&m.AmountAllocated,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget instance row for period "+periodID, err)
		}
		instances = append(instances, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget instance rows for period "+periodID, err)
	}

	return mapping.ToDomainBudgetInstanceSlice(instances), nil
}

// DeleteInstancesByPeriod removes all budget instances of a period.
func (r *PgxBudgetRepository) DeleteInstancesByPeriod(ctx context.Context, periodID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM budget_instances WHERE period_id = $1;`, periodID); err != nil {
		return apperrors.NewAppError(500, "failed to delete budget instances for period "+periodID, err)
	}
	return nil
}
