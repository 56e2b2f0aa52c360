package core

import (
	"reflect"
	"testing"
	"time"
)

func tx(kind Kind, desc string, cents int64, date Date) Transaction {
	return Transaction{
		ID:          date.UnixMilli(),
		Date:        date,
		Description: desc,
		Kind:        kind,
		AmountCents: cents,
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name    string
		input   []Transaction
		income  int64
		expense int64
		balance int64
	}{
		{
			name: "income and expense",
			input: []Transaction{
				tx(Income, "Gaji", 10000000, NewDate(2024, 1, 1)),
				tx(Expense, "Food", 4000000, NewDate(2024, 1, 2)),
			},
			income: 10000000, expense: 4000000, balance: 6000000,
		},
		{name: "empty", input: nil, income: 0, expense: 0, balance: 0},
		{
			name: "expenses only yields negative balance",
			input: []Transaction{
				tx(Expense, "Rent", 500000, NewDate(2024, 2, 1)),
			},
			income: 0, expense: 500000, balance: -500000,
		},
		{
			name: "zero amounts tolerated",
			input: []Transaction{
				tx(Income, "??", 0, NewDate(2024, 3, 1)),
				tx(Expense, "??", 0, NewDate(2024, 3, 2)),
			},
			income: 0, expense: 0, balance: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize(tc.input)
			if got.Income.Cents != tc.income || got.Expense.Cents != tc.expense || got.Balance.Cents != tc.balance {
				t.Fatalf("got income=%d expense=%d balance=%d, want %d/%d/%d",
					got.Income.Cents, got.Expense.Cents, got.Balance.Cents,
					tc.income, tc.expense, tc.balance)
			}
			if got.Balance != got.Income.Sub(got.Expense) {
				t.Fatalf("balance %d is not income-expense", got.Balance.Cents)
			}
		})
	}
}

func TestGroupExpensesByLabel(t *testing.T) {
	input := []Transaction{
		tx(Expense, "Food", 3000000, NewDate(2024, 1, 1)),
		tx(Income, "Gaji", 5000000, NewDate(2024, 1, 2)),
		tx(Expense, "Transport", 1000000, NewDate(2024, 1, 3)),
		tx(Expense, "Food", 500000, NewDate(2024, 1, 4)),
		tx(Expense, "", 200000, NewDate(2024, 1, 5)),
	}

	groups := GroupExpensesByLabel(input)
	want := []CategoryAmount{
		{Name: "Food", Amount: Money{Cents: 3500000}},
		{Name: "Transport", Amount: Money{Cents: 1000000}},
		{Name: "Other", Amount: Money{Cents: 200000}},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Fatalf("got %+v, want %+v", groups, want)
	}

	// Sum of groups equals total expense
	var sum int64
	for _, g := range groups {
		sum += g.Amount.Cents
	}
	if total := Summarize(input).Expense.Cents; sum != total {
		t.Fatalf("group sum %d != total expense %d", sum, total)
	}
}

func TestGroupExpensesByLabelEmpty(t *testing.T) {
	if groups := GroupExpensesByLabel(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
	onlyIncome := []Transaction{tx(Income, "Gaji", 100, NewDate(2024, 1, 1))}
	if groups := GroupExpensesByLabel(onlyIncome); len(groups) != 0 {
		t.Fatalf("income must never be grouped, got %+v", groups)
	}
}

func TestBalanceSeries(t *testing.T) {
	input := []Transaction{
		// Deliberately out of date order
		tx(Expense, "Food", 4000000, NewDate(2024, 1, 2)),
		tx(Income, "Gaji", 10000000, NewDate(2024, 1, 1)),
	}

	series := BalanceSeries(input)
	want := []BalancePoint{
		{Date: NewDate(2024, 1, 1), Balance: Money{Cents: 10000000}},
		{Date: NewDate(2024, 1, 2), Balance: Money{Cents: 6000000}},
	}
	if !reflect.DeepEqual(series, want) {
		t.Fatalf("got %+v, want %+v", series, want)
	}

	// Last point equals the overall balance
	if last := series[len(series)-1].Balance; last != Summarize(input).Balance {
		t.Fatalf("last point %d != overall balance", last.Cents)
	}
}

func TestBalanceSeriesSharedDate(t *testing.T) {
	input := []Transaction{
		tx(Income, "Gaji", 1000, NewDate(2024, 5, 1)),
		tx(Expense, "Food", 300, NewDate(2024, 5, 1)),
		tx(Expense, "Bus", 100, NewDate(2024, 5, 2)),
	}

	series := BalanceSeries(input)
	want := []BalancePoint{
		// One point per distinct date, carrying the balance after the
		// last transaction on that date in original order.
		{Date: NewDate(2024, 5, 1), Balance: Money{Cents: 700}},
		{Date: NewDate(2024, 5, 2), Balance: Money{Cents: 600}},
	}
	if !reflect.DeepEqual(series, want) {
		t.Fatalf("got %+v, want %+v", series, want)
	}
}

func TestBalanceSeriesDoesNotMutateInput(t *testing.T) {
	input := []Transaction{
		tx(Expense, "b", 100, NewDate(2024, 1, 2)),
		tx(Income, "a", 200, NewDate(2024, 1, 1)),
	}
	BalanceSeries(input)
	if input[0].Description != "b" {
		t.Fatal("input order must not change")
	}
}

func TestFilterByPeriod(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	input := []Transaction{
		tx(Income, "nine days ago", 100, NewDate(2024, 1, 1)),
		tx(Expense, "seven days ago", 100, NewDate(2024, 1, 3)),
		tx(Expense, "today", 100, NewDate(2024, 1, 10)),
		tx(Expense, "last month", 100, NewDate(2023, 12, 31)),
		tx(Expense, "last year", 100, NewDate(2023, 1, 10)),
	}

	cases := []struct {
		name   string
		period Period
		want   []string
	}{
		{"weekly excludes nine days ago", PeriodWeekly, []string{"seven days ago", "today"}},
		{"monthly", PeriodMonthly, []string{"nine days ago", "seven days ago", "today"}},
		{"yearly", PeriodYearly, []string{"nine days ago", "seven days ago", "today"}},
		{"all is identity", PeriodAll, []string{"nine days ago", "seven days ago", "today", "last month", "last year"}},
		{"unrecognized is identity", Period("fortnightly"), []string{"nine days ago", "seven days ago", "today", "last month", "last year"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterByPeriod(input, tc.period, now)
			var names []string
			for _, item := range got {
				names = append(names, item.Description)
			}
			if !reflect.DeepEqual(names, tc.want) {
				t.Fatalf("got %v, want %v", names, tc.want)
			}
		})
	}
}
