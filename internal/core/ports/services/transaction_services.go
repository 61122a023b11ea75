package services

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/CrokNoks/account-sub000/internal/dto"
)

// TransactionSvc covers the ledger write shapes this core owns: single
// movements, transfer pairs, the reconciled flag, paginated listing, and the
// advisory category suggestion path.
type TransactionSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	// CreateTransferPair creates two linked transactions with opposite signs
	// across two accounts.
	CreateTransferPair(ctx context.Context, req dto.CreateTransferRequest, userID string) ([]domain.Transaction, error)
	SetReconciled(ctx context.Context, transactionID string, reconciled bool, userID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, req dto.ListTransactionsRequest) ([]domain.Transaction, *string, error)
	// SuggestCategory consults the classifier oracle synchronously and applies
	// the prediction only when the transaction is still uncategorized and the
	// confidence clears the configured threshold. The bool reports whether the
	// prediction was written. Oracle absence or failure yields (nil, false, nil).
	SuggestCategory(ctx context.Context, transactionID string, userID string) (*domain.CategoryPrediction, bool, error)
}
