package pgsql

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	"github.com/CrokNoks/account-sub000/internal/models"
	"github.com/CrokNoks/account-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, account_id, name, color, category_type, budget, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row interface{ Scan(dest ...any) error }) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.AccountID,
		&m.Name,
		&m.Color,
		&m.Type,
		&m.Budget,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ListCategoriesByAccount retrieves all categories owned by the account.
func (r *PgxCategoryRepository) ListCategoriesByAccount(ctx context.Context, accountID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE account_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories for account "+accountID, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row for account "+accountID, err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows for account "+accountID, err)
	}

	return mapping.ToDomainCategorySlice(categories), nil
}

// FindCategoriesByIDs retrieves the given categories as a map keyed by ID.
// Missing IDs are simply absent from the result.
func (r *PgxCategoryRepository) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	if len(categoryIDs) == 0 {
		return map[string]domain.Category{}, nil
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, categoryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Category, len(categoryIDs))
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row during batch fetch", err)
		}
		result[m.CategoryID] = mapping.ToDomainCategory(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows during batch fetch", err)
	}

	return result, nil
}
