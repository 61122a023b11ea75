package dto

import (
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest creates a single signed ledger movement.
type CreateTransactionRequest struct {
	AccountID     string          `json:"account_id" binding:"required"`
	CategoryID    *string         `json:"category_id"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          string          `json:"date" binding:"required,dateonly"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"payment_method"`
	Reconciled    bool            `json:"reconciled"`
}

// CreateTransferRequest creates a linked pair of transactions with opposite
// signs across two accounts. Amount must be positive; the outflow leg is
// negated.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id" binding:"required"`
	ToAccountID   string          `json:"to_account_id" binding:"required,nefield=FromAccountID"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          string          `json:"date" binding:"required,dateonly"`
	Description   string          `json:"description"`
}

// ReconcileRequest toggles the reconciled flag.
type ReconcileRequest struct {
	Reconciled *bool `json:"reconciled" binding:"required"`
}

// ListTransactionsRequest shapes the paginated listing query.
type ListTransactionsRequest struct {
	AccountID string
	From      *string // YYYY-MM-DD
	To        *string // YYYY-MM-DD
	Limit     int
	NextToken *string
}

// TransactionResponse is the wire form of a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	CategoryID    *string         `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Reconciled    bool            `json:"reconciled"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod"`
	TransferID    *string         `json:"transferID"`
}

// ToTransactionResponse converts a domain.Transaction to its wire form.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		Amount:        t.Amount,
		Date:          FormatDate(t.Date),
		Reconciled:    t.Reconciled,
		Description:   t.Description,
		Notes:         t.Notes,
		PaymentMethod: t.PaymentMethod,
		TransferID:    t.TransferID,
	}
}

// ListTransactionsResponse is the paginated listing body.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken"`
}

// ToListTransactionsResponse converts a page of domain transactions.
func ToListTransactionsResponse(ts []domain.Transaction, nextToken *string) ListTransactionsResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return ListTransactionsResponse{Transactions: out, NextToken: nextToken}
}

// SuggestionResponse is the advisory classification answer. Suggestion is nil
// when the oracle is absent, unsure, or the transaction is already categorized.
type SuggestionResponse struct {
	Suggestion *domain.CategoryPrediction `json:"suggestion"`
	Applied    bool                       `json:"applied"`
}
