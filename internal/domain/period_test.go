package domain_test

import (
	"testing"
	"time"

	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod_Monthly(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		lastDay int
	}{
		{name: "january has 31 days", token: "2025-01", lastDay: 31},
		{name: "february in a common year", token: "2025-02", lastDay: 28},
		{name: "february in a leap year", token: "2024-02", lastDay: 29},
		{name: "february in a century non-leap year", token: "1900-02", lastDay: 28},
		{name: "february in a 400-year leap year", token: "2000-02", lastDay: 29},
		{name: "april has 30 days", token: "2025-04", lastDay: 30},
		{name: "december rolls into the next year", token: "2025-12", lastDay: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := domain.ResolvePeriod(tt.token, domain.PeriodTypeMonthly)
			require.NoError(t, err)

			assert.Equal(t, 1, period.Start.Day())
			assert.Equal(t, 0, period.Start.Hour())
			assert.Equal(t, tt.lastDay, period.End.Day())
			assert.Equal(t, period.Start.Month(), period.End.Month())
			assert.Equal(t, 23, period.End.Hour())
			assert.Equal(t, 59, period.End.Minute())
			assert.Equal(t, 59, period.End.Second())
			assert.Equal(t, time.UTC, period.Start.Location())
			assert.Equal(t, domain.PeriodTypeMonthly, period.Type)
			assert.Equal(t, tt.token, period.Token)
		})
	}
}

func TestResolvePeriod_Yearly(t *testing.T) {
	period, err := domain.ResolvePeriod("2025", domain.PeriodTypeYearly)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), period.Start)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), period.End)
	assert.Equal(t, 2025, period.Year())
	assert.False(t, period.IsMonthly())
}

func TestResolvePeriod_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		periodType domain.PeriodType
	}{
		{name: "month out of range", token: "2025-13", periodType: domain.PeriodTypeMonthly},
		{name: "month zero", token: "2025-00", periodType: domain.PeriodTypeMonthly},
		{name: "single digit month", token: "2025-3", periodType: domain.PeriodTypeMonthly},
		{name: "yearly token for monthly type", token: "2025", periodType: domain.PeriodTypeMonthly},
		{name: "monthly token for yearly type", token: "2025-03", periodType: domain.PeriodTypeYearly},
		{name: "year before range", token: "1899", periodType: domain.PeriodTypeYearly},
		{name: "garbage", token: "abcd", periodType: domain.PeriodTypeYearly},
		{name: "empty", token: "", periodType: domain.PeriodTypeMonthly},
		{name: "unknown type", token: "2025", periodType: domain.PeriodType("QUARTERLY")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ResolvePeriod(tt.token, tt.periodType)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidPeriodFormat)
		})
	}
}

func TestPeriod_ContainsIsInclusive(t *testing.T) {
	period, err := domain.ResolvePeriod("2025-03", domain.PeriodTypeMonthly)
	require.NoError(t, err)

	assert.True(t, period.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPeriod_Covers(t *testing.T) {
	year := domain.CalendarYear(2025)
	march, err := domain.ResolvePeriod("2025-03", domain.PeriodTypeMonthly)
	require.NoError(t, err)
	nextYear, err := domain.ResolvePeriod("2026-01", domain.PeriodTypeMonthly)
	require.NoError(t, err)

	assert.True(t, year.Covers(march))
	assert.True(t, year.Covers(year))
	assert.False(t, year.Covers(nextYear))
	assert.False(t, march.Covers(year))
}

func TestPeriod_MatchesExpectedMonth(t *testing.T) {
	march, err := domain.ResolvePeriod("2025-03", domain.PeriodTypeMonthly)
	require.NoError(t, err)
	year := domain.CalendarYear(2025)

	assert.True(t, march.MatchesExpectedMonth("2025-03"))
	assert.False(t, march.MatchesExpectedMonth("2025-04"))
	assert.True(t, year.MatchesExpectedMonth("2025-11"))
	assert.False(t, year.MatchesExpectedMonth("2024-11"))
	assert.False(t, year.MatchesExpectedMonth("20251"))
}

func TestParsePeriodType(t *testing.T) {
	pt, err := domain.ParsePeriodType("monthly")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodTypeMonthly, pt)

	_, err = domain.ParsePeriodType("WEEKLY")
	assert.ErrorIs(t, err, domain.ErrInvalidPeriodFormat)
}

func TestPeriodTypeOf(t *testing.T) {
	pt, err := domain.PeriodTypeOf("2025-06")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodTypeMonthly, pt)

	pt, err = domain.PeriodTypeOf("2025")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodTypeYearly, pt)

	_, err = domain.PeriodTypeOf("June 2025")
	assert.ErrorIs(t, err, domain.ErrInvalidPeriodFormat)
}

func TestCalendarMonth(t *testing.T) {
	period := domain.CalendarMonth(time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02", period.Token)
	assert.Equal(t, 29, period.End.Day())
}
