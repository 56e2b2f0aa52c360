package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dompet/internal/core"
	"dompet/internal/store"
)

type transactionRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      json.RawMessage `json:"amount"`
}

type transactionResponse struct {
	core.Transaction
	AmountDisplay string `json:"amount_display"`
}

type summaryResponse struct {
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	BalanceCents int64  `json:"balance_cents"`
	Income       string `json:"income"`
	Expense      string `json:"expense"`
	Balance      string `json:"balance"`
}

func (s *Server) transactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{Transaction: t, AmountDisplay: s.formatter.Currency(t.Amount())}
}

func (s *Server) summaryResponse(sum core.Summary) summaryResponse {
	return summaryResponse{
		IncomeCents:  sum.Income.Cents,
		ExpenseCents: sum.Expense.Cents,
		BalanceCents: sum.Balance.Cents,
		Income:       s.formatter.Currency(sum.Income),
		Expense:      s.formatter.Currency(sum.Expense),
		Balance:      s.formatter.Currency(sum.Balance),
	}
}

// parseTransactionInput decodes and normalizes a transaction payload.
// The amount may arrive as a JSON number or string; either way a
// malformed value coerces to zero rather than failing the request.
func parseTransactionInput(r *http.Request) (store.TransactionInput, error) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return store.TransactionInput{}, err
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return store.TransactionInput{}, err
	}

	kind, err := parseKind(req.Category)
	if err != nil {
		return store.TransactionInput{}, err
	}

	return store.TransactionInput{
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Kind:        kind,
		Amount:      core.ParseAmount(strings.Trim(string(req.Amount), `"`)),
	}, nil
}

func parseKind(s string) (core.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return core.Income, nil
	case "expense":
		return core.Expense, nil
	default:
		return "", core.ErrInvalidKind
	}
}

// confirmFromRequest treats the confirm query parameter as the
// interactive confirmation step for destructive actions.
func confirmFromRequest(r *http.Request) store.Confirmer {
	return store.ConfirmFunc(func(string) bool {
		return r.URL.Query().Get("confirm") == "true"
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum := core.Summarize(s.store.Transactions())
	writeJSON(w, http.StatusOK, s.summaryResponse(sum))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	transactions := s.store.Transactions()
	sum := core.Summarize(transactions)
	groups := core.GroupExpensesByLabel(transactions)
	series := core.BalanceSeries(transactions)

	type barRow struct {
		Label       string `json:"label"`
		AmountCents int64  `json:"amount_cents"`
		Amount      string `json:"amount"`
	}
	type linePoint struct {
		Date         string `json:"date"`
		BalanceCents int64  `json:"balance_cents"`
		Balance      string `json:"balance"`
	}

	resp := struct {
		Summary summaryResponse `json:"summary"`
		Pie     struct {
			Labels      []string `json:"labels"`
			ValuesCents []int64  `json:"values_cents"`
		} `json:"pie"`
		Bar  []barRow    `json:"bar"`
		Line []linePoint `json:"line"`
	}{Summary: s.summaryResponse(sum)}

	resp.Pie.Labels = []string{string(core.Income), string(core.Expense)}
	resp.Pie.ValuesCents = []int64{sum.Income.Cents, sum.Expense.Cents}

	resp.Bar = make([]barRow, 0, len(groups))
	for _, g := range groups {
		resp.Bar = append(resp.Bar, barRow{
			Label:       g.Name,
			AmountCents: g.Amount.Cents,
			Amount:      s.formatter.Currency(g.Amount),
		})
	}

	resp.Line = make([]linePoint, 0, len(series))
	for _, p := range series {
		resp.Line = append(resp.Line, linePoint{
			Date:         p.Date.String(),
			BalanceCents: p.Balance.Cents,
			Balance:      s.formatter.Currency(p.Balance),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	var items []transactionResponse
	for _, t := range s.store.Transactions() {
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if category != "" && !strings.EqualFold(category, string(t.Kind)) {
			continue
		}
		if date != "" && date != t.Date.String() {
			continue
		}
		items = append(items, s.transactionResponse(t))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": items,
		"count":        len(items),
	})
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := parseTransactionInput(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	t, err := s.store.Add(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, s.transactionResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	in, err := parseTransactionInput(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	t, err := s.store.Update(r.Context(), id, in)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.transactionResponse(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	removed, err := s.store.Remove(r.Context(), id, confirmFromRequest(r))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": removed})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimSpace(r.URL.Query().Get("action"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	type entryResponse struct {
		core.ActivityEntry
		TimestampDisplay string `json:"timestamp_display"`
	}

	var items []entryResponse
	for _, e := range s.store.Activities() {
		if action != "" && !strings.EqualFold(action, string(e.Action)) {
			continue
		}
		if date != "" && !strings.HasPrefix(e.Timestamp.Format(time.RFC3339), date) {
			continue
		}
		items = append(items, entryResponse{
			ActivityEntry:    e,
			TimestampDisplay: s.formatter.DateTime(e.Timestamp),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"activities": items,
		"count":      len(items),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	cleared, err := s.store.ClearActivityLog(r.Context(), confirmFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": cleared})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	period := core.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = core.PeriodAll
	}

	filtered := core.FilterByPeriod(s.store.Transactions(), period, time.Now())
	groups := core.GroupExpensesByLabel(filtered)
	insights := s.insights.Generate(filtered, groups)

	type donutRow struct {
		Label       string `json:"label"`
		AmountCents int64  `json:"amount_cents"`
		Amount      string `json:"amount"`
	}
	donut := make([]donutRow, 0, len(groups))
	for _, g := range groups {
		donut = append(donut, donutRow{
			Label:       g.Name,
			AmountCents: g.Amount.Cents,
			Amount:      s.formatter.Currency(g.Amount),
		})
	}

	resp := map[string]any{
		"period":   string(period),
		"summary":  s.summaryResponse(core.Summarize(filtered)),
		"donut":    donut,
		"insights": insights,
	}

	if s.narrator != nil {
		narrative, err := s.narrator.Narrate(r.Context(), insights)
		if err != nil {
			slog.WarnContext(r.Context(), "Insight narration failed", "error", err)
		} else if narrative != "" {
			resp["narrative"] = narrative
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.store.Theme(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.SetTheme(r.Context(), req.Theme); err != nil {
		if errors.Is(err, store.ErrInvalidTheme) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
