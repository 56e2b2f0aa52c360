package insight

import (
	"strings"
	"testing"

	"dompet/internal/core"
	"dompet/internal/format"
)

func newGenerator() *Generator {
	return NewGenerator(format.New(format.DefaultConfig()))
}

func tx(kind core.Kind, desc string, cents int64) core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(2024, 1, 15),
		Description: desc,
		Kind:        kind,
		AmountCents: cents,
	}
}

func generate(t *testing.T, transactions []core.Transaction) []string {
	t.Helper()
	return newGenerator().Generate(transactions, core.GroupExpensesByLabel(transactions))
}

func TestGenerateEmptyShortCircuits(t *testing.T) {
	insights := generate(t, nil)
	if len(insights) != 1 || insights[0] != EmptyMessage {
		t.Fatalf("got %v, want just the placeholder", insights)
	}
}

func TestGenerateAllRules(t *testing.T) {
	insights := generate(t, []core.Transaction{
		tx(core.Expense, "Food", 3000000),
		tx(core.Expense, "Transport", 1000000),
		tx(core.Income, "Gaji", 5000000),
	})

	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %d: %v", len(insights), insights)
	}
	if !strings.Contains(insights[0], `"Food"`) || !strings.Contains(insights[0], "(75.0% of total expenses)") {
		t.Fatalf("unexpected biggest-category insight: %s", insights[0])
	}
	if !strings.HasPrefix(insights[1], "Great job! You have a surplus of ") {
		t.Fatalf("unexpected surplus insight: %s", insights[1])
	}
	// Average of 30000 and 10000 is 20000
	if !strings.HasPrefix(insights[2], "Your average expense per transaction is ") {
		t.Fatalf("unexpected average insight: %s", insights[2])
	}
}

func TestGenerateDeficit(t *testing.T) {
	insights := generate(t, []core.Transaction{
		tx(core.Expense, "Rent", 800000),
		tx(core.Income, "Gaji", 300000),
	})

	var surplus, deficit int
	for _, s := range insights {
		if strings.Contains(s, "surplus") {
			surplus++
		}
		if strings.Contains(s, "deficit") {
			deficit++
		}
	}
	if surplus != 0 || deficit != 1 {
		t.Fatalf("want exactly one deficit insight and no surplus, got %v", insights)
	}
}

func TestGenerateEqualTotalsSkipsRuleTwo(t *testing.T) {
	insights := generate(t, []core.Transaction{
		tx(core.Expense, "Food", 500000),
		tx(core.Income, "Gaji", 500000),
	})
	for _, s := range insights {
		if strings.Contains(s, "surplus") || strings.Contains(s, "deficit") {
			t.Fatalf("equal totals must yield neither surplus nor deficit: %v", insights)
		}
	}
}

func TestGenerateZeroExpenseTotalOmitsRuleOne(t *testing.T) {
	// Coerced zero amounts produce a non-empty grouping with a zero
	// total; the percentage is undefined, so rule 1 must be omitted
	// rather than divide by zero.
	insights := generate(t, []core.Transaction{
		tx(core.Expense, "Food", 0),
		tx(core.Income, "Gaji", 100000),
	})
	for _, s := range insights {
		if strings.Contains(s, "biggest expense category") {
			t.Fatalf("rule 1 must be omitted when total expenses is zero: %v", insights)
		}
	}
}

func TestGenerateIncomeOnly(t *testing.T) {
	insights := generate(t, []core.Transaction{
		tx(core.Income, "Gaji", 100000),
	})
	if len(insights) != 1 || !strings.Contains(insights[0], "surplus") {
		t.Fatalf("income only should yield just the surplus insight, got %v", insights)
	}
}

func TestBiggestGroupTieKeepsFirst(t *testing.T) {
	groups := []core.CategoryAmount{
		{Name: "Food", Amount: core.Money{Cents: 1000}},
		{Name: "Transport", Amount: core.Money{Cents: 1000}},
	}
	top, ok := biggestGroup(groups)
	if !ok || top.Name != "Food" {
		t.Fatalf("tie must keep the first-encountered group, got %+v", top)
	}
}
