package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single signed ledger movement: positive amounts are inflows,
// negative amounts are outflows. The sign is the sole source of income/expense
// classification when the category declares no type.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	AccountID     string          `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	CategoryID    *string         `json:"categoryID"`    // Nullable FK -> categories.category_id
	Amount        decimal.Decimal `json:"amount"`        // Signed
	Date          time.Time       `json:"date"`
	Reconciled    bool            `json:"reconciled"` // Confirmed against a bank statement
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod"` // Display only
	TransferID    *string         `json:"transferID"`    // Links the two legs of a transfer pair
	AuditFields
}

// IsUncategorized reports whether the transaction has no category assigned.
func (t Transaction) IsUncategorized() bool {
	return t.CategoryID == nil || *t.CategoryID == ""
}
