// Package reporting holds the pure period-report arithmetic. Everything here is
// free of I/O and mutation so that concurrent report computations need no
// coordination.
package reporting

import (
	"sort"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Placeholder identity for transactions without a category.
const (
	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#9E9E9E"
)

// Compute aggregates a date-bounded transaction set into the full set of report
// figures. Transactions must already be filtered to [start, end] (end inclusive,
// open-ended when nil); initialBalance is the caller-supplied starting balance
// for the window and is never recomputed here.
//
// Inputs are not mutated. Two calls with identical inputs return identical
// results, including the order of the category breakdown.
func Compute(
	transactions []domain.Transaction,
	categories []domain.Category,
	instances []domain.BudgetInstance,
	initialBalance decimal.Decimal,
	start time.Time,
	end *time.Time,
) domain.ReportTotals {
	_ = start // Window bounds are part of the contract; filtering is the caller's job.
	_ = end

	categoryByID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.CategoryID] = c
	}

	totals := domain.ReportTotals{
		InitialBalance:      initialBalance,
		TotalIncome:         decimal.Zero,
		TotalExpense:        decimal.Zero,
		BankBalance:         initialBalance,
		OperationsBalance:   initialBalance,
		UnreconciledBalance: decimal.Zero,
		ProjectedBalance:    initialBalance,
	}

	// Seed one breakdown entry per budget instance so categories with no
	// spending still appear with their allocation.
	type entry struct {
		row      domain.CategoryTotals
		declared bool // Category declared a type; sign fallback not needed
	}
	entries := make(map[string]*entry, len(instances))
	for _, inst := range instances {
		e := &entry{row: domain.CategoryTotals{
			CategoryID: inst.CategoryID,
			Name:       UncategorizedName,
			Color:      UncategorizedColor,
			Budgeted:   inst.AmountAllocated,
			Spent:      decimal.Zero,
		}}
		if cat, ok := categoryByID[inst.CategoryID]; ok {
			e.row.Name = cat.Name
			e.row.Color = cat.Color
			if cat.Type != "" {
				e.row.Type = cat.Type
				e.declared = true
			}
		}
		entries[inst.CategoryID] = e
	}

	for _, txn := range transactions {
		if txn.Amount.IsPositive() {
			totals.TotalIncome = totals.TotalIncome.Add(txn.Amount)
		} else if txn.Amount.IsNegative() {
			totals.TotalExpense = totals.TotalExpense.Add(txn.Amount.Abs())
		}
		if txn.Reconciled {
			totals.BankBalance = totals.BankBalance.Add(txn.Amount)
		} else {
			totals.UnreconciledBalance = totals.UnreconciledBalance.Add(txn.Amount)
			totals.UnreconciledCount++
		}

		key := ""
		if txn.CategoryID != nil {
			key = *txn.CategoryID
		}
		e, ok := entries[key]
		if !ok {
			e = &entry{row: domain.CategoryTotals{
				CategoryID: key,
				Name:       UncategorizedName,
				Color:      UncategorizedColor,
				Budgeted:   decimal.Zero,
				Spent:      decimal.Zero,
			}}
			if cat, found := categoryByID[key]; found {
				e.row.Name = cat.Name
				e.row.Color = cat.Color
				if cat.Type != "" {
					e.row.Type = cat.Type
					e.declared = true
				}
			}
			entries[key] = e
		}
		e.row.Spent = e.row.Spent.Add(txn.Amount)
	}

	totals.OperationsBalance = initialBalance.Add(totals.TotalIncome).Sub(totals.TotalExpense)

	// Projected balance counts, per category, the larger of the allocation and
	// the actual spending, partitioned by the entry's resolved type.
	projected := initialBalance
	rows := make([]domain.CategoryTotals, 0, len(entries))
	for _, e := range entries {
		// Declared type wins; the amount sign is only a fallback for
		// legacy/uncategorized data.
		if !e.declared {
			if e.row.Spent.IsNegative() {
				e.row.Type = domain.CategoryExpense
			} else {
				e.row.Type = domain.CategoryIncome
			}
		}
		e.row.Remaining = e.row.Budgeted.Sub(e.row.Spent.Abs())

		effective := decimal.Max(e.row.Budgeted, e.row.Spent.Abs())
		if e.row.Type == domain.CategoryExpense {
			projected = projected.Sub(effective)
		} else {
			projected = projected.Add(effective)
		}
		rows = append(rows, e.row)
	}
	totals.ProjectedBalance = projected

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].CategoryID < rows[j].CategoryID
	})
	totals.Categories = rows

	return totals
}
