package domain

import "time"

// Period is a date-bounded reporting window for an account. An active period is
// open-ended (EndDate nil); closing a period sets EndDate and flips IsActive.
//
// BudgetsConfirmed is a persisted saga marker: period creation writes the period
// row first and its budget instances second, with no shared store transaction
// between the two collections. The flag stays false until the instance insert
// succeeds, so a crash between the writes leaves a detectable, invisible row
// instead of a silent orphan active period.
type Period struct {
	PeriodID         string     `json:"periodID"`  // Primary Key (UUID)
	AccountID        string     `json:"accountID"` // FK -> accounts.account_id (Not Null)
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"` // Nil while the period is ongoing
	EstimatedEndDate time.Time  `json:"estimatedEndDate"`
	IsActive         bool       `json:"isActive"`
	BudgetsConfirmed bool       `json:"-"`
	AuditFields
}
