// Package format renders money and timestamps for a configurable
// locale. The original data set used Indonesian labels, so the
// defaults are id-ID and rupiah, but both are configuration, not
// constants.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"dompet/internal/core"
)

// Config selects the display locale and currency.
type Config struct {
	Locale         string // BCP 47 tag, e.g. "id-ID"
	Symbol         string // currency symbol prefix, e.g. "Rp"
	FractionDigits int    // minor digits shown, 0 for rupiah
}

// DefaultConfig matches the original application's id-ID / IDR display.
func DefaultConfig() Config {
	return Config{Locale: "id-ID", Symbol: "Rp", FractionDigits: 0}
}

// Formatter renders amounts and dates for one locale. The zero value
// is not usable; construct with New.
type Formatter struct {
	cfg     Config
	printer *message.Printer
}

func New(cfg Config) *Formatter {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.Indonesian
	}
	return &Formatter{cfg: cfg, printer: message.NewPrinter(tag)}
}

// Currency renders an amount with the configured symbol and
// locale-specific digit grouping.
func (f *Formatter) Currency(m core.Money) string {
	v := float64(m.Cents) / 100
	neg := v < 0
	if neg {
		v = -v
	}
	s := f.printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(f.cfg.FractionDigits),
		number.MaxFractionDigits(f.cfg.FractionDigits)))
	if neg {
		return "-" + f.cfg.Symbol + s
	}
	return f.cfg.Symbol + s
}

// Date renders a calendar date.
func (f *Formatter) Date(d core.Date) string {
	return d.Format("02/01/2006")
}

// DateTime renders an instant.
func (f *Formatter) DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}
