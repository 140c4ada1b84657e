package datemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddDaysInverse(t *testing.T) {
	testCases := []struct {
		base time.Time
		days int
	}{
		{time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2025, 1, 30, 12, 30, 0, 0, time.UTC), 3},
		{time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 12, 29, 23, 59, 59, 0, time.UTC), 10},
		{time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC), 0},
		{time.Date(2023, 2, 27, 0, 0, 0, 0, time.UTC), 365},
	}

	for _, tt := range testCases {
		result := AddDays(AddDays(tt.base, tt.days), -tt.days)
		assert.Equal(t, tt.base, result)
	}
}

func TestAddDaysCalendarBoundaries(t *testing.T) {
	testCases := []struct {
		name     string
		base     time.Time
		days     int
		expected time.Time
	}{
		{
			name:     "w obrębie miesiąca",
			base:     time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
			days:     5,
			expected: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "przez granicę miesiąca",
			base:     time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
			days:     3,
			expected: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "przez granicę roku",
			base:     time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
			days:     5,
			expected: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "rok przestępny",
			base:     time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			days:     1,
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "rok nieprzestępny",
			base:     time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			days:     1,
			expected: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddDays(tt.base, tt.days))
		})
	}
}

func TestAddDaysPreservesTimeOfDay(t *testing.T) {
	base := time.Date(2025, 8, 5, 14, 45, 30, 0, time.UTC)
	result := AddDays(base, 10)

	assert.Equal(t, 14, result.Hour())
	assert.Equal(t, 45, result.Minute())
	assert.Equal(t, 30, result.Second())
}

func TestFormatLongDate(t *testing.T) {
	testCases := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), "5 August 2025"},
		{time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), "10 August 2025"},
		{time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), "2 February 2025"},
		{time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), "31 December 2024"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "1 January 2026"},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.expected, FormatLongDate(tt.date))
	}
}

// Scenariusze z przepływu checkout: data wypożyczenia + czas trwania.
func TestReturnDateScenarios(t *testing.T) {
	borrowDate := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "10 August 2025", FormatLongDate(AddDays(borrowDate, 5)))

	borrowDate = time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2 February 2025", FormatLongDate(AddDays(borrowDate, 3)))
}

func TestDaysBetween(t *testing.T) {
	testCases := []struct {
		from     time.Time
		to       time.Time
		expected int
	}{
		{time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), 0},
		// Składnik godzinowy nie wpływa na wynik.
		{time.Date(2025, 8, 5, 23, 0, 0, 0, time.UTC), time.Date(2025, 8, 10, 1, 0, 0, 0, time.UTC), 5},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.expected, DaysBetween(tt.from, tt.to))
	}
}
