package core

import (
	"sort"
	"time"
)

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodAll     Period = "all"
)

// FallbackLabel is the grouping bucket for expenses without a description.
const FallbackLabel = "Other"

type (
	// Period is a time-window selector applied relative to a reference
	// instant.
	Period string

	// Summary holds the totals derived from a transaction snapshot.
	Summary struct {
		Income  Money
		Expense Money
		Balance Money
	}

	// CategoryAmount represents an amount aggregated by label.
	CategoryAmount struct {
		Name   string
		Amount Money
	}

	// BalancePoint is one entry of the running-balance time series.
	BalancePoint struct {
		Date    Date
		Balance Money
	}
)

// Summarize sums amounts by kind over a snapshot. An empty snapshot
// yields all zeros; Balance is always Income minus Expense.
func Summarize(transactions []Transaction) Summary {
	var s Summary
	for _, t := range transactions {
		switch t.Kind {
		case Income:
			s.Income = s.Income.Add(t.Amount())
		case Expense:
			s.Expense = s.Expense.Add(t.Amount())
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}

// GroupExpensesByLabel groups expense transactions by description and
// sums the amounts per group. An empty description falls back to the
// "Other" bucket. Group order is the first-occurrence order of each
// label in the snapshot.
func GroupExpensesByLabel(transactions []Transaction) []CategoryAmount {
	index := make(map[string]int)
	var groups []CategoryAmount
	for _, t := range transactions {
		if t.Kind != Expense {
			continue
		}
		label := t.Description
		if label == "" {
			label = FallbackLabel
		}
		if i, ok := index[label]; ok {
			groups[i].Amount = groups[i].Amount.Add(t.Amount())
			continue
		}
		index[label] = len(groups)
		groups = append(groups, CategoryAmount{Name: label, Amount: t.Amount()})
	}
	return groups
}

// BalanceSeries folds a date-sorted copy of the snapshot into a
// running-balance series with one point per distinct date. When
// several transactions share a date, the point carries the balance
// after the last of them in sorted order; ties within a date keep the
// original snapshot order.
func BalanceSeries(transactions []Transaction) []BalancePoint {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	var series []BalancePoint
	var running int64
	for _, t := range sorted {
		running += t.Signed()
		point := BalancePoint{Date: t.Date, Balance: Money{Cents: running}}
		if n := len(series); n > 0 && series[n-1].Date.Equal(t.Date.Time) {
			series[n-1] = point
			continue
		}
		series = append(series, point)
	}
	return series
}

// FilterByPeriod returns the subsequence of transactions falling in
// the given window relative to now. The reference instant is an
// explicit input so the function stays deterministic.
//
//	weekly:  date >= now-7d, date precision, inclusive
//	monthly: same calendar month and year as now
//	yearly:  same calendar year as now
//	all (or anything unrecognized): the input unchanged
func FilterByPeriod(transactions []Transaction, period Period, now time.Time) []Transaction {
	switch period {
	case PeriodWeekly:
		cutoff := truncateToDate(now).AddDate(0, 0, -7)
		return filter(transactions, func(t Transaction) bool {
			return !t.Date.Before(cutoff)
		})
	case PeriodMonthly:
		return filter(transactions, func(t Transaction) bool {
			return t.Date.Year() == now.Year() && t.Date.Month() == now.Month()
		})
	case PeriodYearly:
		return filter(transactions, func(t Transaction) bool {
			return t.Date.Year() == now.Year()
		})
	default:
		return transactions
	}
}

func filter(transactions []Transaction, keep func(Transaction) bool) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
