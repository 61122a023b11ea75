package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table. Amount is signed: positive for
// inflows, negative for outflows.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	CategoryID    *string         `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Reconciled    bool            `json:"reconciled"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod"`
	TransferID    *string         `json:"transferID"`
	AuditFields
}
