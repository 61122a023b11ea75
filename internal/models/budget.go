package models

import "github.com/shopspring/decimal"

// BudgetTemplate mirrors the budget_templates table.
type BudgetTemplate struct {
	TemplateID string          `json:"templateID"`
	AccountID  string          `json:"accountID"`
	CategoryID string          `json:"categoryID"`
	AmountBase decimal.Decimal `json:"amountBase"`
	IsFixed    bool            `json:"isFixed"`
	AuditFields
}

// BudgetInstance mirrors the budget_instances table.
type BudgetInstance struct {
	InstanceID      string          `json:"instanceID"`
	PeriodID        string          `json:"periodID"`
	CategoryID      string          `json:"categoryID"`
	AmountAllocated decimal.Decimal `json:"amountAllocated"`
	AuditFields
}
