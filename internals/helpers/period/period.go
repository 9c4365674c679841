// file: internals/helpers/period/period.go
package period

import (
	"fmt"
	"strings"
	"time"

	"nyumbasmart_backend/internals/helpers/apperr"
)

// Period is one calendar billing month.
type Period struct {
	Year  int
	Month time.Month
}

// accepted inputs, tried in order
var layouts = []string{
	"2006-01",
	"January 2006",
	"Jan 2006",
	"2006-1",
}

// Parse accepts "2026-10", "October 2026" or "Oct 2026" (month names are
// case-insensitive).
func Parse(s string) (Period, error) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return Period{}, apperr.InvalidArgument("billing month is required")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Period{Year: t.Year(), Month: t.Month()}, nil
		}
	}
	return Period{}, apperr.InvalidArgument("invalid billing month %q, use YYYY-MM or \"Month YYYY\"", s)
}

// ParseOrCurrent falls back to the current month in loc when s is blank.
func ParseOrCurrent(s string, now time.Time, loc *time.Location) (Period, error) {
	if strings.TrimSpace(s) == "" {
		return Of(now, loc), nil
	}
	return Parse(s)
}

// Of returns the period containing t as seen in loc.
func Of(t time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return Period{Year: lt.Year(), Month: lt.Month()}
}

// Label is the stored form, e.g. "October 2026".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month.String(), p.Year)
}

func (p Period) String() string { return p.Label() }

// Start is midnight UTC on the first day of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) Next() Period {
	n := p.Start().AddDate(0, 1, 0)
	return Period{Year: n.Year(), Month: n.Month()}
}

func (p Period) Prev() Period {
	n := p.Start().AddDate(0, -1, 0)
	return Period{Year: n.Year(), Month: n.Month()}
}

func (p Period) Before(o Period) bool {
	return p.Start().Before(o.Start())
}

// DaysIn is the number of days in the month.
func (p Period) DaysIn() int {
	return p.Next().Start().AddDate(0, 0, -1).Day()
}

// DueDate is the given day of the month, clamped to the month length.
func (p Period) DueDate(day int) time.Time {
	if day < 1 {
		day = 1
	}
	if max := p.DaysIn(); day > max {
		day = max
	}
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}
