package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotals is one row of a report's per-category breakdown.
// Spent accumulates signed amounts; Remaining is Budgeted minus |Spent|.
type CategoryTotals struct {
	CategoryID string          `json:"categoryID"` // Empty for the uncategorized bucket
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Type       CategoryType    `json:"type"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// ReportTotals is the complete set of balance figures for one date window.
//
// Invariants (for any transaction set):
//
//	OperationsBalance == InitialBalance + TotalIncome - TotalExpense
//	BankBalance       == OperationsBalance - UnreconciledBalance
type ReportTotals struct {
	InitialBalance      decimal.Decimal  `json:"initialBalance"`
	TotalIncome         decimal.Decimal  `json:"totalIncome"`
	TotalExpense        decimal.Decimal  `json:"totalExpense"` // Absolute value
	BankBalance         decimal.Decimal  `json:"bankBalance"`  // Initial + reconciled movements only
	OperationsBalance   decimal.Decimal  `json:"operationsBalance"`
	UnreconciledBalance decimal.Decimal  `json:"unreconciledBalance"` // Signed sum of unreconciled movements
	ProjectedBalance    decimal.Decimal  `json:"projectedBalance"`    // Budget-aware worst/best case
	UnreconciledCount   int              `json:"unreconciledCount"`
	Categories          []CategoryTotals `json:"categories"`
}

// ArchivedReport is the immutable record written when a period closes. The date
// bounds and InitialBalance are frozen inputs; every other figure is recomputed
// from the live ledger on read so that category renames and recolors stay
// reflected in historical views. Snapshot keeps the figures as they were at
// closing time for comparison, and is never served as authoritative data.
type ArchivedReport struct {
	ReportID       string          `json:"reportID"`  // Primary Key (UUID)
	AccountID      string          `json:"accountID"` // FK -> accounts.account_id (Not Null)
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Authoritative balance anchor
	Snapshot       ReportTotals    `json:"snapshot"`
	AuditFields
}

// EvolutionPoint is one entry of the archived-report evolution series.
type EvolutionPoint struct {
	ReportID          string          `json:"reportID"`
	StartDate         time.Time       `json:"startDate"`
	EndDate           time.Time       `json:"endDate"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	OperationsBalance decimal.Decimal `json:"operationsBalance"`
}
