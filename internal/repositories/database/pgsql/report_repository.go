package pgsql

import (
	"context"
	"errors"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	"github.com/CrokNoks/account-sub000/internal/models"
	"github.com/CrokNoks/account-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxArchiveRepository struct {
	BaseRepository
}

// newPgxArchiveRepository creates a new repository for archived period reports.
func newPgxArchiveRepository(pool *pgxpool.Pool) portsrepo.ArchiveRepository {
	return &PgxArchiveRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ArchiveRepository = (*PgxArchiveRepository)(nil)

const archiveColumns = `report_id, account_id, start_date, end_date, initial_balance, data, created_at, created_by, last_updated_at, last_updated_by`

func scanArchivedReport(row interface{ Scan(dest ...any) error }) (models.ArchivedReport, error) {
	var m models.ArchivedReport
	err := row.Scan(
		&m.ReportID,
		&m.AccountID,
		&m.StartDate,
		&m.EndDate,
		&m.InitialBalance,
		&m.Snapshot,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveArchivedReport inserts an immutable archive row. There is no update
// path by design.
func (r *PgxArchiveRepository) SaveArchivedReport(ctx context.Context, report domain.ArchivedReport) error {
	m, err := mapping.ToModelArchivedReport(report)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize report snapshot for period report "+report.ReportID, err)
	}
	query := `
		INSERT INTO archived_reports (` + archiveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.ReportID,
		m.AccountID,
		m.StartDate,
		m.EndDate,
		m.InitialBalance,
		m.Snapshot,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert archived report "+m.ReportID, err)
	}
	return nil
}

// FindArchivedReportByID retrieves an archive row by its ID.
func (r *PgxArchiveRepository) FindArchivedReportByID(ctx context.Context, reportID string) (*domain.ArchivedReport, error) {
	query := `SELECT ` + archiveColumns + ` FROM archived_reports WHERE report_id = $1;`
	m, err := scanArchivedReport(r.Pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find archived report by ID "+reportID, err)
	}
	report := mapping.ToDomainArchivedReport(m)
	return &report, nil
}

// FindLatestArchivedReport returns the account's archive with the latest end
// date. Its operations balance seeds the next period's initial balance.
func (r *PgxArchiveRepository) FindLatestArchivedReport(ctx context.Context, accountID string) (*domain.ArchivedReport, error) {
	query := `
		SELECT ` + archiveColumns + `
		FROM archived_reports
		WHERE account_id = $1
		ORDER BY end_date DESC
		LIMIT 1;
	`
	m, err := scanArchivedReport(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest archived report for account "+accountID, err)
	}
	report := mapping.ToDomainArchivedReport(m)
	return &report, nil
}

// ListArchivedReportsByAccount retrieves the account's archives ordered by
// start date ascending.
func (r *PgxArchiveRepository) ListArchivedReportsByAccount(ctx context.Context, accountID string) ([]domain.ArchivedReport, error) {
	query := `SELECT ` + archiveColumns + ` FROM archived_reports WHERE account_id = $1 ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query archived reports for account "+accountID, err)
	}
	defer rows.Close()

	reports := []domain.ArchivedReport{}
	for rows.Next() {
		m, err := scanArchivedReport(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan archived report row for account "+accountID, err)
		}
		reports = append(reports, mapping.ToDomainArchivedReport(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating archived report rows for account "+accountID, err)
	}

	return reports, nil
}

// DeleteArchivedReport removes an archive row. Transactions are untouched;
// the caller owns recomputing the rollover chain.
func (r *PgxArchiveRepository) DeleteArchivedReport(ctx context.Context, reportID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM archived_reports WHERE report_id = $1;`, reportID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete archived report "+reportID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("archived report " + reportID + " not found for deletion")
	}
	return nil
}
