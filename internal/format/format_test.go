package format

import (
	"testing"
	"time"

	"dompet/internal/core"
)

func TestCurrencyIndonesian(t *testing.T) {
	f := New(DefaultConfig())

	tests := []struct {
		cents int64
		want  string
	}{
		{0, "Rp0"},
		{4000000, "Rp40.000"},
		{10000000, "Rp100.000"},
		{123456789, "Rp1.234.568"}, // rounded, no fraction digits
		{-5000000, "-Rp50.000"},
	}
	for _, tt := range tests {
		if got := f.Currency(core.Money{Cents: tt.cents}); got != tt.want {
			t.Errorf("Currency(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestCurrencyOtherLocale(t *testing.T) {
	f := New(Config{Locale: "en-US", Symbol: "$", FractionDigits: 2})

	tests := []struct {
		cents int64
		want  string
	}{
		{123456, "$1,234.56"},
		{50, "$0.50"},
		{-199, "-$1.99"},
	}
	for _, tt := range tests {
		if got := f.Currency(core.Money{Cents: tt.cents}); got != tt.want {
			t.Errorf("Currency(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	f := New(Config{Locale: "no-such-locale!", Symbol: "Rp", FractionDigits: 0})
	if got := f.Currency(core.Money{Cents: 4000000}); got != "Rp40.000" {
		t.Errorf("Currency = %q, want Indonesian fallback Rp40.000", got)
	}
}

func TestDateFormats(t *testing.T) {
	f := New(DefaultConfig())

	if got := f.Date(core.NewDate(2024, 1, 2)); got != "02/01/2024" {
		t.Errorf("Date = %q, want 02/01/2024", got)
	}
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	if got := f.DateTime(ts); got != "02/01/2024 15:04:05" {
		t.Errorf("DateTime = %q, want 02/01/2024 15:04:05", got)
	}
}
