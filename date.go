package patrimoine

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// MonthFormat is the format of a Month.
const MonthFormat = "2006-01"

// Date represents a date with day-level granularity. The zero Date means "absent".
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in ISO-8601, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool {
	return d.y == 0 && d.m == 0 && d.d == 0
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// AddMonth returns a new Date with the given number of months added.
// The day is clamped to the end of the target month (Jan 31 + 1 month is Feb 28).
func (d Date) AddMonth(i int) Date {
	first := NewDate(d.y, d.m+time.Month(i), 1)
	last := NewDate(first.y, first.m+1, 0).d
	return NewDate(first.y, first.m, min(d.d, last))
}

// Or returns d, or fallback when d is the zero date.
func (d Date) Or(fallback Date) Date {
	if d.IsZero() {
		return fallback
	}
	return d
}

// MonthOf returns the calendar month containing d.
func (d Date) MonthOf() Month { return NewMonth(d.y, d.m) }

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmqy])$`)

// ParseDate parses a Date from a string. It is lenient and accepts formats
// like "2025-7-1", relative offsets from today like "-2y" or "+3m", and the
// "0d" shortcut for today.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	if str == "0d" {
		return Today(), nil
	}

	// Relative Duration Format (e.g., -1d, +2w) - sign is mandatory for non-zero
	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			// This should not happen given the regex
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}

		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return today.AddMonth(num), nil
		case "q":
			return today.AddMonth(num * 3), nil
		case "y":
			return today.AddMonth(num * 12), nil
		}
	}

	on, err := time.Parse(readDateFormat, str)
	// We use a slightly more permisive format for read, to support 2025-7-1 instead of 2025-07-01
	if err != nil {
		// records exported by other tools carry a timestamp
		on, err = time.Parse(time.RFC3339, str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
// An empty string or null is the zero date.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str *string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == nil || strings.TrimSpace(*str) == "" {
		*j = Date{}
		return nil
	}
	on, err := time.Parse(readDateFormat, *str)
	if err != nil {
		on, err = time.Parse(time.RFC3339, *str)
	}
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", *str, DateFormat, err)
	}
	*j = NewDate(on.Date())
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	if j.IsZero() {
		return []byte("null"), nil
	}
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// Month is a calendar month, the granularity of rent collection.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month.
func NewMonth(year int, month time.Month) Month {
	d := NewDate(year, month, 1)
	return Month{d.y, d.m}
}

func (m Month) Year() int            { return m.y }
func (m Month) Month() time.Month    { return m.m }
func (m Month) Add(i int) Month      { return NewMonth(m.y, m.m+time.Month(i)) }
func (m Month) Before(n Month) bool  { return m.index() < n.index() }
func (m Month) After(n Month) bool   { return m.index() > n.index() }
func (m Month) IsZero() bool         { return m.y == 0 && m.m == 0 }
func (m Month) First() Date          { return NewDate(m.y, m.m, 1) }
func (m Month) String() string       { return m.First().time().Format(MonthFormat) }
func (m Month) index() int           { return m.y*12 + int(m.m) - 1 }
func (m Month) Until(n Month) int    { return n.index() - m.index() }
func (m Month) Contains(d Date) bool { return d.y == m.y && d.m == m.m }

// ParseMonth parses "2025-03" or "2025-3".
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse("2006-1", strings.TrimSpace(str))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return NewMonth(on.Year(), on.Month()), nil
}

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

// MonthRange is an inclusive range of months.
type MonthRange struct{ From, To Month }

// Contains return true if m is included in the range (boundaries included)
func (r MonthRange) Contains(m Month) bool { return !m.Before(r.From) && !m.After(r.To) }

// Len returns the number of months in the range, 0 when To is before From.
func (r MonthRange) Len() int { return max(0, r.From.Until(r.To)+1) }
