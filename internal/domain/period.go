package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PeriodType distinguishes monthly from yearly periods
type PeriodType string

const (
	PeriodTypeMonthly PeriodType = "MONTHLY"
	PeriodTypeYearly  PeriodType = "YEARLY"
)

const (
	minPeriodYear = 1900
	maxPeriodYear = 9999
)

var (
	monthlyTokenPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	yearlyTokenPattern  = regexp.MustCompile(`^(\d{4})$`)
)

// IsValid reports whether the period type is MONTHLY or YEARLY
func (t PeriodType) IsValid() bool {
	return t == PeriodTypeMonthly || t == PeriodTypeYearly
}

// ParsePeriodType parses a period type, ignoring case
func ParsePeriodType(s string) (PeriodType, error) {
	t := PeriodType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown period type %q", ErrInvalidPeriodFormat, s)
	}
	return t, nil
}

// PeriodTypeOf infers the period type from the shape of a token
func PeriodTypeOf(token string) (PeriodType, error) {
	switch {
	case monthlyTokenPattern.MatchString(token):
		return PeriodTypeMonthly, nil
	case yearlyTokenPattern.MatchString(token):
		return PeriodTypeYearly, nil
	}
	return "", fmt.Errorf("%w: %q is neither YYYY-MM nor YYYY", ErrInvalidPeriodFormat, token)
}

// Period is a resolved, inclusive UTC date window.
// Start is the first instant of the period, End its final second.
type Period struct {
	Token string     `json:"token"`
	Type  PeriodType `json:"type"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// ResolvePeriod turns a period token into its inclusive UTC window.
// MONTHLY expects "YYYY-MM", YEARLY expects "YYYY".
func ResolvePeriod(token string, periodType PeriodType) (Period, error) {
	token = strings.TrimSpace(token)

	switch periodType {
	case PeriodTypeMonthly:
		m := monthlyTokenPattern.FindStringSubmatch(token)
		if m == nil {
			return Period{}, fmt.Errorf("%w: monthly period must be YYYY-MM, got %q", ErrInvalidPeriodFormat, token)
		}
		year, err := parseYear(m[1])
		if err != nil {
			return Period{}, err
		}
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return Period{}, fmt.Errorf("%w: month %d out of range", ErrInvalidPeriodFormat, month)
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return Period{
			Token: token,
			Type:  PeriodTypeMonthly,
			Start: start,
			End:   start.AddDate(0, 1, 0).Add(-time.Second),
		}, nil

	case PeriodTypeYearly:
		m := yearlyTokenPattern.FindStringSubmatch(token)
		if m == nil {
			return Period{}, fmt.Errorf("%w: yearly period must be YYYY, got %q", ErrInvalidPeriodFormat, token)
		}
		year, err := parseYear(m[1])
		if err != nil {
			return Period{}, err
		}
		return CalendarYear(year), nil
	}

	return Period{}, fmt.Errorf("%w: unknown period type %q", ErrInvalidPeriodFormat, periodType)
}

// CalendarYear returns the YEARLY period for a year
func CalendarYear(year int) Period {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Token: strconv.Itoa(year),
		Type:  PeriodTypeYearly,
		Start: start,
		End:   start.AddDate(1, 0, 0).Add(-time.Second),
	}
}

// CalendarMonth returns the MONTHLY period containing t
func CalendarMonth(t time.Time) Period {
	t = t.UTC()
	p, _ := ResolvePeriod(t.Format("2006-01"), PeriodTypeMonthly)
	return p
}

func parseYear(s string) (int, error) {
	year, _ := strconv.Atoi(s)
	if year < minPeriodYear || year > maxPeriodYear {
		return 0, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriodFormat, year)
	}
	return year, nil
}

// Year returns the calendar year of the period
func (p Period) Year() int {
	return p.Start.Year()
}

// IsMonthly reports whether the period covers a single month
func (p Period) IsMonthly() bool {
	return p.Type == PeriodTypeMonthly
}

// Contains reports whether t falls inside the inclusive window
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Covers reports whether other lies entirely within p
func (p Period) Covers(other Period) bool {
	return p.Contains(other.Start) && p.Contains(other.End)
}

// MatchesExpectedMonth reports whether a "YYYY-MM" expected month belongs
// to the period: an exact match for months, a year prefix for years.
func (p Period) MatchesExpectedMonth(month string) bool {
	if p.IsMonthly() {
		return month == p.Token
	}
	return strings.HasPrefix(month, p.Token+"-")
}

func (p Period) String() string {
	return fmt.Sprintf("%s %s", p.Type, p.Token)
}
