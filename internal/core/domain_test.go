package core

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        NewDate(2024, 1, 1),
		Description: "Food",
		Kind:        Expense,
		AmountCents: 100,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amounts are tolerated (coerced input), everything else is not.
	zeroAmount := good
	zeroAmount.AmountCents = 0
	if err := zeroAmount.Validate(); err != nil {
		t.Fatalf("zero amount must validate, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{}, Description: "a", Kind: Income, AmountCents: 1},
		{Date: NewDate(2024, 1, 1), Description: "  ", Kind: Income, AmountCents: 1},
		{Date: NewDate(2024, 1, 1), Description: "a", Kind: Kind("Pemasukan"), AmountCents: 1},
	}
	for i, bad := range bads {
		if err := bad.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionSigned(t *testing.T) {
	in := Transaction{Kind: Income, AmountCents: 250}
	out := Transaction{Kind: Expense, AmountCents: 250}
	if in.Signed() != 250 || out.Signed() != -250 {
		t.Fatalf("got %d and %d", in.Signed(), out.Signed())
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 2)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-01-02"` {
		t.Fatalf("got %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip changed the date: %v != %v", back, d)
	}
}

func TestTransactionJSONRoundTrip(t *testing.T) {
	orig := []Transaction{
		{
			ID:          1704067200000,
			Date:        NewDate(2024, 1, 1),
			Description: "Gaji",
			Kind:        Income,
			AmountCents: 10000000,
			CreatedAt:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:          1704153600000,
			Date:        NewDate(2024, 1, 2),
			Description: "Food",
			Kind:        Expense,
			AmountCents: 4000000,
			CreatedAt:   time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		},
	}

	raw, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []Transaction
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(orig, back) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, orig)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatal("expected error for invalid month")
	}
	d, err := ParseDate(" 2024-06-15 ")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-06-15" {
		t.Fatalf("got %s", d)
	}
}
