package models

import "time"

// Period mirrors the periods table. budgets_confirmed flips to true only after
// the period's budget instances have been written.
type Period struct {
	PeriodID         string     `json:"periodID"`
	AccountID        string     `json:"accountID"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	EstimatedEndDate time.Time  `json:"estimatedEndDate"`
	IsActive         bool       `json:"isActive"`
	BudgetsConfirmed bool       `json:"budgetsConfirmed"`
	AuditFields
}
