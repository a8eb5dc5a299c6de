package ast

import (
	"time"
)

// DefaultDateLayout is the calendar pattern transaction dates are written in
// unless a parser is configured otherwise.
const DefaultDateLayout = "2006-01-02"

// Commodity is the unit an amount is counted in, such as "$", "€" or "Stocks".
// Commodities written in quotes may contain spaces and digits ("50 cent pieces").
type Commodity string

// Amount represents a signed quantity tagged with the commodity it is counted in.
type Amount struct {
	Value     float64
	Commodity Commodity
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return Amount{Value: -a.Value, Commodity: a.Commodity}
}

// Date represents the calendar date of a transaction.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses value using layout. An empty layout means DefaultDateLayout.
func ParseDate(layout, value string) (Date, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String formats the date using DefaultDateLayout.
func (d Date) String() string {
	return d.Format(DefaultDateLayout)
}
