package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var (
	ErrInvalidDate  = errors.New("domain: invalid date, want YYYY-MM-DD")
	ErrInvalidMonth = errors.New("domain: invalid month, want YYYY-MM")
)

// Date is a calendar day without a time component. It marshals as
// "YYYY-MM-DD", matching the DATE column it is stored in.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "%q", d.Format(dateLayout)), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month is a calendar month. It marshals as "YYYY-MM" and is stored as the
// first day of the month in a DATE column.
type Month struct {
	time.Time
}

func NewMonth(year int, month time.Month) Month {
	return Month{time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{t}, nil
}

func (m Month) String() string { return m.Format(monthLayout) }

// Before reports whether m is strictly earlier than other.
func (m Month) Before(other Month) bool { return m.Time.Before(other.Time) }

func (m Month) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "%q", m.Format(monthLayout)), nil
}

func (m *Month) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return ErrInvalidMonth
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func unquote(b []byte) (string, error) {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return "", errors.New("domain: not a JSON string")
	}
	return string(b[1 : len(b)-1]), nil
}
