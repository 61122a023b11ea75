package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a tracked financial account (personal or shared).
// InitialBalance is set once at account creation and anchors every balance
// computed for the account's reporting periods.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Signed; immutable after creation
	AuditFields
}
