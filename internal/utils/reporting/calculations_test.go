package reporting

import (
	"testing"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func txn(amount string, reconciled bool, categoryID *string) domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn-" + amount,
		AccountID:     "acc-1",
		CategoryID:    categoryID,
		Amount:        dec(amount),
		Date:          windowStart.AddDate(0, 0, 5),
		Reconciled:    reconciled,
	}
}

func strPtr(s string) *string { return &s }

func TestComputeMixedReconciliation(t *testing.T) {
	transactions := []domain.Transaction{
		txn("50", true, nil),
		txn("-30", false, nil),
	}

	totals := Compute(transactions, nil, nil, dec("100"), windowStart, &windowEnd)

	assert.True(t, totals.BankBalance.Equal(dec("150")), "bank balance: %s", totals.BankBalance)
	assert.True(t, totals.OperationsBalance.Equal(dec("120")), "operations balance: %s", totals.OperationsBalance)
	assert.True(t, totals.UnreconciledBalance.Equal(dec("-30")), "unreconciled balance: %s", totals.UnreconciledBalance)
	assert.Equal(t, 1, totals.UnreconciledCount)
	assert.True(t, totals.TotalIncome.Equal(dec("50")))
	assert.True(t, totals.TotalExpense.Equal(dec("30")))
}

func TestComputeEmptyInput(t *testing.T) {
	totals := Compute(nil, nil, nil, dec("200"), windowStart, &windowEnd)

	assert.True(t, totals.InitialBalance.Equal(dec("200")))
	assert.True(t, totals.BankBalance.Equal(dec("200")))
	assert.True(t, totals.OperationsBalance.Equal(dec("200")))
	assert.True(t, totals.ProjectedBalance.Equal(dec("200")))
	assert.True(t, totals.UnreconciledBalance.IsZero())
	assert.True(t, totals.TotalIncome.IsZero())
	assert.True(t, totals.TotalExpense.IsZero())
	assert.Equal(t, 0, totals.UnreconciledCount)
	assert.Empty(t, totals.Categories)
}

func TestComputeOverBudgetCategory(t *testing.T) {
	categories := []domain.Category{
		{CategoryID: "cat-a", AccountID: "acc-1", Name: "Groceries", Color: "#FF0000", Type: domain.CategoryExpense},
	}
	instances := []domain.BudgetInstance{
		{InstanceID: "inst-1", PeriodID: "per-1", CategoryID: "cat-a", AmountAllocated: dec("100")},
	}
	transactions := []domain.Transaction{
		txn("-120", true, strPtr("cat-a")),
	}

	totals := Compute(transactions, categories, instances, decimal.Zero, windowStart, &windowEnd)

	require.Len(t, totals.Categories, 1)
	row := totals.Categories[0]
	assert.Equal(t, "cat-a", row.CategoryID)
	assert.Equal(t, "Groceries", row.Name)
	assert.True(t, row.Budgeted.Equal(dec("100")))
	assert.True(t, row.Spent.Equal(dec("-120")), "spent keeps its sign: %s", row.Spent)
	assert.True(t, row.Remaining.Equal(dec("-20")), "over budget: %s", row.Remaining)
}

func TestComputeBalanceIdentities(t *testing.T) {
	transactions := []domain.Transaction{
		txn("75.50", true, nil),
		txn("-12.25", false, strPtr("cat-a")),
		txn("-40", true, strPtr("cat-a")),
		txn("300", false, strPtr("cat-b")),
	}
	categories := []domain.Category{
		{CategoryID: "cat-a", AccountID: "acc-1", Name: "Food", Type: domain.CategoryExpense},
		{CategoryID: "cat-b", AccountID: "acc-1", Name: "Salary", Type: domain.CategoryIncome},
	}

	totals := Compute(transactions, categories, nil, dec("10"), windowStart, &windowEnd)

	operations := totals.InitialBalance.Add(totals.TotalIncome).Sub(totals.TotalExpense)
	assert.True(t, totals.OperationsBalance.Equal(operations), "operations identity")

	bank := totals.OperationsBalance.Sub(totals.UnreconciledBalance)
	assert.True(t, totals.BankBalance.Equal(bank), "bank identity")
}

func TestComputeProjectedUsesLargerOfBudgetedAndActual(t *testing.T) {
	categories := []domain.Category{
		{CategoryID: "cat-under", AccountID: "acc-1", Name: "Under", Type: domain.CategoryExpense},
		{CategoryID: "cat-over", AccountID: "acc-1", Name: "Over", Type: domain.CategoryExpense},
		{CategoryID: "cat-salary", AccountID: "acc-1", Name: "Salary", Type: domain.CategoryIncome},
	}
	instances := []domain.BudgetInstance{
		{InstanceID: "i1", PeriodID: "p1", CategoryID: "cat-under", AmountAllocated: dec("100")},
		{InstanceID: "i2", PeriodID: "p1", CategoryID: "cat-over", AmountAllocated: dec("50")},
		{InstanceID: "i3", PeriodID: "p1", CategoryID: "cat-salary", AmountAllocated: dec("2000")},
	}
	transactions := []domain.Transaction{
		txn("-40", true, strPtr("cat-under")),    // budgeted 100 > |spent| 40 -> 100
		txn("-80", true, strPtr("cat-over")),     // |spent| 80 > budgeted 50 -> 80
		txn("1500", true, strPtr("cat-salary")),  // budgeted 2000 > spent 1500 -> +2000
	}

	totals := Compute(transactions, categories, instances, decimal.Zero, windowStart, &windowEnd)

	// 0 + 2000 - 100 - 80
	assert.True(t, totals.ProjectedBalance.Equal(dec("1820")), "projected: %s", totals.ProjectedBalance)
}

func TestComputeTypeFallback(t *testing.T) {
	// No declared type anywhere: the sign of the accumulated spending decides.
	categories := []domain.Category{
		{CategoryID: "cat-x", AccountID: "acc-1", Name: "Mystery"},
	}
	transactions := []domain.Transaction{
		txn("-25", true, strPtr("cat-x")),
		txn("60", true, nil),
	}

	totals := Compute(transactions, categories, nil, decimal.Zero, windowStart, &windowEnd)

	require.Len(t, totals.Categories, 2)
	for _, row := range totals.Categories {
		switch row.CategoryID {
		case "cat-x":
			assert.Equal(t, domain.CategoryExpense, row.Type, "negative spending falls back to expense")
		case "":
			assert.Equal(t, domain.CategoryIncome, row.Type, "positive spending falls back to income")
			assert.Equal(t, UncategorizedName, row.Name)
			assert.Equal(t, UncategorizedColor, row.Color)
		default:
			t.Fatalf("unexpected category row %q", row.CategoryID)
		}
	}
}

func TestComputeDeclaredTypeWinsOverSign(t *testing.T) {
	// A refund leaves positive spending on an expense category; the declared
	// type must still win.
	categories := []domain.Category{
		{CategoryID: "cat-a", AccountID: "acc-1", Name: "Refunds", Type: domain.CategoryExpense},
	}
	transactions := []domain.Transaction{
		txn("30", true, strPtr("cat-a")),
	}

	totals := Compute(transactions, categories, nil, decimal.Zero, windowStart, &windowEnd)

	require.Len(t, totals.Categories, 1)
	assert.Equal(t, domain.CategoryExpense, totals.Categories[0].Type)
	// Expense partition subtracts max(budgeted, |spent|) = 30.
	assert.True(t, totals.ProjectedBalance.Equal(dec("-30")), "projected: %s", totals.ProjectedBalance)
}

func TestComputeSeedsUnspentBudgets(t *testing.T) {
	instances := []domain.BudgetInstance{
		{InstanceID: "i1", PeriodID: "p1", CategoryID: "cat-a", AmountAllocated: dec("150")},
	}
	categories := []domain.Category{
		{CategoryID: "cat-a", AccountID: "acc-1", Name: "Rent", Type: domain.CategoryExpense},
	}

	totals := Compute(nil, categories, instances, dec("500"), windowStart, &windowEnd)

	require.Len(t, totals.Categories, 1)
	row := totals.Categories[0]
	assert.True(t, row.Spent.IsZero())
	assert.True(t, row.Remaining.Equal(dec("150")))
	assert.True(t, totals.ProjectedBalance.Equal(dec("350")), "projected: %s", totals.ProjectedBalance)
}

func TestComputeDeterministicOrderingAndPurity(t *testing.T) {
	categories := []domain.Category{
		{CategoryID: "cat-b", AccountID: "acc-1", Name: "Beta", Type: domain.CategoryExpense},
		{CategoryID: "cat-a", AccountID: "acc-1", Name: "Alpha", Type: domain.CategoryExpense},
		{CategoryID: "cat-a2", AccountID: "acc-1", Name: "Alpha", Type: domain.CategoryExpense},
	}
	transactions := []domain.Transaction{
		txn("-10", true, strPtr("cat-b")),
		txn("-20", true, strPtr("cat-a")),
		txn("-30", true, strPtr("cat-a2")),
	}
	originalAmount := transactions[0].Amount

	first := Compute(transactions, categories, nil, dec("5"), windowStart, &windowEnd)
	second := Compute(transactions, categories, nil, dec("5"), windowStart, &windowEnd)

	assert.Equal(t, first, second, "identical inputs must produce identical outputs")
	assert.True(t, transactions[0].Amount.Equal(originalAmount), "inputs must not be mutated")

	require.Len(t, first.Categories, 3)
	assert.Equal(t, "cat-a", first.Categories[0].CategoryID, "name ties break on category id")
	assert.Equal(t, "cat-a2", first.Categories[1].CategoryID)
	assert.Equal(t, "cat-b", first.Categories[2].CategoryID)
}
