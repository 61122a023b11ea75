package domain

import "github.com/shopspring/decimal"

// BudgetTemplate is the recurring, account-level budget baseline for one
// category. It is independent of any period and edited directly by the user.
type BudgetTemplate struct {
	TemplateID string          `json:"templateID"` // Primary Key (UUID)
	AccountID  string          `json:"accountID"`  // FK -> accounts.account_id (Not Null)
	CategoryID string          `json:"categoryID"` // FK -> categories.category_id (Not Null)
	AmountBase decimal.Decimal `json:"amountBase"`
	IsFixed    bool            `json:"isFixed"` // Fixed charge vs variable expense
	AuditFields
}

// BudgetInstance realizes a template's allocation for one specific period.
type BudgetInstance struct {
	InstanceID      string          `json:"instanceID"` // Primary Key (UUID)
	PeriodID        string          `json:"periodID"`   // FK -> periods.period_id (Not Null)
	CategoryID      string          `json:"categoryID"` // Must belong to the period's account
	AmountAllocated decimal.Decimal `json:"amountAllocated"`
	AuditFields
}

// BudgetInstanceDraft is a not-yet-persisted allocation, produced by template
// expansion and possibly edited by the user before period creation.
type BudgetInstanceDraft struct {
	CategoryID      string          `json:"categoryID"`
	AmountAllocated decimal.Decimal `json:"amountAllocated"`
}
