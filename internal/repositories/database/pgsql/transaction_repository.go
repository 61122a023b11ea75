package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	"github.com/CrokNoks/account-sub000/internal/models"
	"github.com/CrokNoks/account-sub000/internal/utils/mapping"
	"github.com/CrokNoks/account-sub000/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, account_id, category_id, amount, txn_date, reconciled, description, notes, payment_method, transfer_id, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func scanTransaction(row interface{ Scan(dest ...any) error }) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.CategoryID,
		&m.Amount,
		&m.Date,
		&m.Reconciled,
		&m.Description,
		&m.Notes,
		&m.PaymentMethod,
		&m.TransferID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertTransactionArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.Date,
		m.Reconciled,
		m.Description,
		m.Notes,
		m.PaymentMethod,
		m.TransferID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveTransaction inserts a single ledger movement.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	if _, err := r.Pool.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// SaveTransferPair inserts both legs of a transfer within one database
// transaction. Both rows live in the transactions collection, so atomicity is
// available here, unlike the cross-collection period creation.
func (r *PgxTransactionRepository) SaveTransferPair(ctx context.Context, outflow, inflow domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	batch.Queue(insertTransactionQuery, insertTransactionArgs(mapping.ToModelTransaction(outflow))...)
	batch.Queue(insertTransactionQuery, insertTransactionArgs(mapping.ToModelTransaction(inflow))...)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transfer pair "+outflow.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsInRange returns all transactions of the account dated within
// [from, to]; a nil to leaves the window open-ended.
func (r *PgxTransactionRepository) ListTransactionsInRange(ctx context.Context, accountID string, from time.Time, to *time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 AND txn_date >= $2`
	args := []any{accountID, from}
	if to != nil {
		query += ` AND txn_date <= $3`
		args = append(args, *to)
	}
	query += ` ORDER BY txn_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions in range for account "+accountID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, err)
		}
		transactions = append(transactions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// ListTransactionsByAccount retrieves a paginated list of transactions for an
// account using token-based pagination over (txn_date, created_at).
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1`
	args := []any{accountID}
	if from != nil {
		args = append(args, *from)
		query += ` AND txn_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND txn_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (txn_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY txn_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, err)
		}
		transactions = append(transactions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := transactions
	if len(transactions) > limit {
		last := transactions[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = transactions[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// SumAmountsBefore returns the signed sum of all amounts dated strictly before
// the given date. This is the full-history prefix query behind initial-balance
// derivation.
func (r *PgxTransactionRepository) SumAmountsBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = $1 AND txn_date < $2;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, before).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum prior transactions for account "+accountID, err)
	}
	return sum, nil
}

// CountUnreconciledInRange counts the unreconciled transactions inside
// [from, to]. This backs the server-side reconciliation gate.
func (r *PgxTransactionRepository) CountUnreconciledInRange(ctx context.Context, accountID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE account_id = $1 AND txn_date >= $2 AND txn_date <= $3 AND reconciled = false;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, accountID, from, to).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unreconciled transactions for account "+accountID, err)
	}
	return count, nil
}

// SetReconciled updates the reconciled flag of a transaction.
func (r *PgxTransactionRepository) SetReconciled(ctx context.Context, transactionID string, reconciled bool, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET reconciled = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, transactionID, reconciled, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update reconciled flag for transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found for update")
	}
	return nil
}

// SetCategoryIfUncategorized applies an advisory category suggestion only when
// the transaction still has no category, so a user assignment made in the
// meantime always wins over the oracle.
func (r *PgxTransactionRepository) SetCategoryIfUncategorized(ctx context.Context, transactionID, categoryID, updatedBy string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE transactions
		SET category_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND category_id IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, transactionID, categoryID, updatedAt, updatedBy)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to apply category suggestion to transaction "+transactionID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
