// Package scheduler re-runs the derivation pipeline on a fixed
// interval and whenever the store signals a mutation. This is a
// scheduled re-render for the lifetime of the process, not a
// concurrent computation.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"dompet/internal/core"
	"dompet/internal/insight"
	"dompet/internal/store"
)

type Scheduler struct {
	store    *store.Store
	insights *insight.Generator
	interval time.Duration
	notifyCh chan struct{}
}

func New(st *store.Store, gen *insight.Generator, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		store:    st,
		insights: gen,
		interval: interval,
		notifyCh: make(chan struct{}, 1),
	}
}

// Notify triggers an immediate refresh. Non-blocking if a refresh is
// already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Start blocks until ctx is cancelled, refreshing the derived views on
// every tick and on every store notification.
func (s *Scheduler) Start(ctx context.Context) {
	slog.InfoContext(ctx, "Refresh scheduler started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Refresh scheduler stopped")
			return
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.notifyCh:
			s.refresh(ctx)
		}
	}
}

// refresh re-derives the dashboard views from the current snapshot and
// logs the outcome so operators can watch the pipeline work.
func (s *Scheduler) refresh(ctx context.Context) {
	transactions := s.store.Transactions()
	summary := core.Summarize(transactions)
	groups := core.GroupExpensesByLabel(transactions)
	series := core.BalanceSeries(transactions)
	insights := s.insights.Generate(transactions, groups)

	slog.InfoContext(ctx, "Derived views refreshed",
		"transactions", len(transactions),
		"income_cents", summary.Income.Cents,
		"expense_cents", summary.Expense.Cents,
		"balance_cents", summary.Balance.Cents,
		"expense_groups", len(groups),
		"series_points", len(series),
		"insights", len(insights))
}
