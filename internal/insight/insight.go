// Package insight turns aggregation output into ranked
// natural-language observations.
package insight

import (
	"fmt"
	"math"

	"dompet/internal/core"
	"dompet/internal/format"
)

// EmptyMessage is the placeholder emitted when the filtered snapshot
// has no transactions at all.
const EmptyMessage = "Add some transactions to see detailed analytics and insights!"

// Generator produces insight strings from a filtered transaction
// subsequence and its expense grouping.
type Generator struct {
	fmt *format.Formatter
}

func NewGenerator(f *format.Formatter) *Generator {
	return &Generator{fmt: f}
}

// Generate applies the insight rules in fixed order, each one
// conditionally appended:
//
//  1. the biggest expense label with its share of total expenses
//     (omitted when total expenses is zero);
//  2. surplus or deficit, never both, nothing when totals are equal;
//  3. average expense per transaction when at least one expense exists.
//
// An empty subsequence short-circuits to the placeholder message.
func (g *Generator) Generate(transactions []core.Transaction, groups []core.CategoryAmount) []string {
	if len(transactions) == 0 {
		return []string{EmptyMessage}
	}

	summary := core.Summarize(transactions)
	var insights []string

	if top, ok := biggestGroup(groups); ok && summary.Expense.Cents > 0 {
		share := float64(top.Amount.Cents) / float64(summary.Expense.Cents) * 100
		insights = append(insights, fmt.Sprintf(
			"Your biggest expense category is %q with %s (%.1f%% of total expenses).",
			top.Name, g.fmt.Currency(top.Amount), share))
	}

	switch {
	case summary.Income.Cents > summary.Expense.Cents:
		insights = append(insights, fmt.Sprintf(
			"Great job! You have a surplus of %s this period.",
			g.fmt.Currency(summary.Income.Sub(summary.Expense))))
	case summary.Expense.Cents > summary.Income.Cents:
		insights = append(insights, fmt.Sprintf(
			"You have a deficit of %s this period. Consider reviewing your expenses.",
			g.fmt.Currency(summary.Expense.Sub(summary.Income))))
	}

	if n := countExpenses(transactions); n > 0 {
		avg := core.Money{Cents: int64(math.Round(float64(summary.Expense.Cents) / float64(n)))}
		insights = append(insights, fmt.Sprintf(
			"Your average expense per transaction is %s.", g.fmt.Currency(avg)))
	}

	return insights
}

// biggestGroup returns the label with the maximum summed amount. Ties
// keep the first-encountered group.
func biggestGroup(groups []core.CategoryAmount) (core.CategoryAmount, bool) {
	if len(groups) == 0 {
		return core.CategoryAmount{}, false
	}
	top := groups[0]
	for _, g := range groups[1:] {
		if g.Amount.Cents > top.Amount.Cents {
			top = g
		}
	}
	return top, true
}

func countExpenses(transactions []core.Transaction) int {
	n := 0
	for _, t := range transactions {
		if t.Kind == core.Expense {
			n++
		}
	}
	return n
}
