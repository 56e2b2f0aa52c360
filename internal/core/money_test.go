package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"40000", 4000000},
		{"12.34", 1234},
		{"12,34", 1234},
		{"12.345", 1234}, // rounds down
		{"12.346", 1235}, // rounds up
		{".5", 50},
		{"  100  ", 10000},
		{"0", 0},
		// Malformed input coerces to zero, never errors
		{"", 0},
		{"abc", 0},
		{"12.3.4", 0},
		{"12a", 0},
		{"99999999999999999999", 0},
		// Signs are stripped: amounts are unsigned magnitudes
		{"-50", 5000},
		{"+50", 5000},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseAmount(tc.in); got.Cents != tc.cents {
				t.Fatalf("ParseAmount(%q) = %d, want %d", tc.in, got.Cents, tc.cents)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 1500}
	b := Money{Cents: 500}
	if got := a.Add(b); got.Cents != 2000 {
		t.Fatalf("Add = %d, want 2000", got.Cents)
	}
	if got := b.Sub(a); got.Cents != -1000 {
		t.Fatalf("Sub = %d, want -1000", got.Cents)
	}
	if got := a.Units(); got != 15.0 {
		t.Fatalf("Units = %v, want 15.0", got)
	}
}
