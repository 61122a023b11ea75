package domain

import "github.com/shopspring/decimal"

// CategoryType declares whether a category tracks spending or income.
type CategoryType string

const (
	CategoryExpense CategoryType = "EXPENSE"
	CategoryIncome  CategoryType = "INCOME"
)

// Category groups transactions for budgeting and reporting.
// Budget, when set, is the monthly target used to seed budget templates.
type Category struct {
	CategoryID string           `json:"categoryID"` // Primary Key (UUID)
	AccountID  string           `json:"accountID"`  // FK -> accounts.account_id (Not Null)
	Name       string           `json:"name"`
	Color      string           `json:"color"` // Hex color for display
	Type       CategoryType     `json:"type"`
	Budget     *decimal.Decimal `json:"budget"` // Optional monthly target
	AuditFields
}
