package models

import "github.com/shopspring/decimal"

// CategoryType mirrors the category_type enum.
type CategoryType string

const (
	CategoryExpense CategoryType = "EXPENSE"
	CategoryIncome  CategoryType = "INCOME"
)

// Category mirrors the categories table.
type Category struct {
	CategoryID string           `json:"categoryID"`
	AccountID  string           `json:"accountID"`
	Name       string           `json:"name"`
	Color      string           `json:"color"`
	Type       CategoryType     `json:"type"`
	Budget     *decimal.Decimal `json:"budget"`
	AuditFields
}
