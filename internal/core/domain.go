package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

const (
	ActionAdded   Action = "Added"
	ActionUpdated Action = "Updated"
	ActionDeleted Action = "Deleted"
)

type (
	// Kind classifies a transaction as money in or money out.
	Kind string

	// Action identifies the mutation recorded by an activity entry.
	Action string

	// Date is a calendar date without a time component.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is one recorded money movement. Amount is an unsigned
	// magnitude; the sign is implied by Kind. For expenses the
	// description doubles as the grouping label.
	Transaction struct {
		ID          int64     `json:"id"`
		Date        Date      `json:"date"`
		Description string    `json:"description"`
		Kind        Kind      `json:"category"`
		AmountCents int64     `json:"amount_cents"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	// ActivityEntry is an audit record of a mutation to the
	// transaction collection. Entries are ordered newest first.
	ActivityEntry struct {
		ID        int64     `json:"id"`
		Timestamp time.Time `json:"timestamp"`
		Action    Action    `json:"action"`
		Details   string    `json:"details"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidKind      = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// Amount returns the transaction amount as Money.
func (t Transaction) Amount() Money {
	return Money{Cents: t.AmountCents}
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	// A zero amount is tolerated: malformed numeric input coerces to
	// zero rather than being rejected.
	return nil
}

// Signed returns the amount in cents with the sign implied by Kind:
// positive for income, negative for expenses.
func (t Transaction) Signed() int64 {
	if t.Kind == Expense {
		return -t.AmountCents
	}
	return t.AmountCents
}
