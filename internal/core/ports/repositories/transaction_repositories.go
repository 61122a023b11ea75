package repositories

import (
	"context"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines the ledger query and write shapes the core
// needs: date-range reads for reports, the full-history prefix sum for initial
// balance derivation, and the unreconciled count for the reconciliation gate.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// SaveTransferPair persists the two legs of a transfer atomically; both
	// rows live in the same collection so a single store transaction applies.
	SaveTransferPair(ctx context.Context, outflow, inflow domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// ListTransactionsInRange returns all transactions of the account with
	// from <= date <= to; a nil to means open-ended.
	ListTransactionsInRange(ctx context.Context, accountID string, from time.Time, to *time.Time) ([]domain.Transaction, error)
	// ListTransactionsByAccount is the paginated listing (date DESC,
	// created_at DESC) using opaque cursor tokens.
	ListTransactionsByAccount(ctx context.Context, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	// SumAmountsBefore returns the signed sum of all amounts dated strictly
	// before the given date.
	SumAmountsBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error)
	CountUnreconciledInRange(ctx context.Context, accountID string, from, to time.Time) (int, error)
	SetReconciled(ctx context.Context, transactionID string, reconciled bool, updatedBy string, updatedAt time.Time) error
	// SetCategoryIfUncategorized applies an advisory category suggestion only
	// when the transaction still has no category. Returns true when applied.
	SetCategoryIfUncategorized(ctx context.Context, transactionID, categoryID, updatedBy string, updatedAt time.Time) (bool, error)
}
