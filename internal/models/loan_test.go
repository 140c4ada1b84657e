package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

func loanWith(status LoanStatus, dueAt time.Time, returnedAt *time.Time) *Loan {
	return &Loan{
		ID:         1,
		Status:     status,
		BorrowedAt: time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC),
		DueAt:      dueAt,
		ReturnedAt: returnedAt,
	}
}

func TestClassify(t *testing.T) {
	past := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	future := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)
	returned := time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		loan     *Loan
		expected DisplayStatus
	}{
		{
			name:     "RETURNED zawsze daje Returned, nawet po terminie",
			loan:     loanWith(LoanStatusReturned, past, &returned),
			expected: DisplayReturned,
		},
		{
			name:     "RETURNED z terminem w przyszłości",
			loan:     loanWith(LoanStatusReturned, future, &returned),
			expected: DisplayReturned,
		},
		{
			name:     "OVERDUE z backendu daje Overdue",
			loan:     loanWith(LoanStatusOverdue, past, nil),
			expected: DisplayOverdue,
		},
		{
			name:     "BORROWED z terminem w przyszłości daje Active",
			loan:     loanWith(LoanStatusBorrowed, future, nil),
			expected: DisplayActive,
		},
		{
			// Zabezpieczenie po stronie klienta: backend jeszcze nie
			// przestawił statusu, ale termin już minął.
			name:     "BORROWED po terminie daje Overdue",
			loan:     loanWith(LoanStatusBorrowed, past, nil),
			expected: DisplayOverdue,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loan.Classify(now))
		})
	}
}

func TestMatchesFilterAll(t *testing.T) {
	past := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	future := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)
	returned := time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)

	loans := []*Loan{
		loanWith(LoanStatusBorrowed, future, nil),
		loanWith(LoanStatusBorrowed, past, nil),
		loanWith(LoanStatusOverdue, past, nil),
		loanWith(LoanStatusReturned, past, &returned),
	}

	for _, loan := range loans {
		assert.True(t, loan.MatchesFilter(FilterAll, now))
		assert.True(t, loan.MatchesFilter("", now))
	}
}

func TestMatchesFilterBuckets(t *testing.T) {
	past := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	future := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)
	returned := time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)

	active := loanWith(LoanStatusBorrowed, future, nil)
	overdue := loanWith(LoanStatusOverdue, past, nil)
	done := loanWith(LoanStatusReturned, past, &returned)

	assert.True(t, active.MatchesFilter("Active", now))
	assert.False(t, active.MatchesFilter("Returned", now))
	assert.False(t, active.MatchesFilter("Overdue", now))

	assert.True(t, overdue.MatchesFilter("Overdue", now))
	assert.False(t, overdue.MatchesFilter("Active", now))

	assert.True(t, done.MatchesFilter("Returned", now))
	assert.False(t, done.MatchesFilter("Active", now))
}

func TestEffectiveDurationDays(t *testing.T) {
	loan := &Loan{
		BorrowedAt:   time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC),
		DueAt:        time.Date(2025, 8, 10, 10, 0, 0, 0, time.UTC),
		DurationDays: 5,
	}
	// Wartość z backendu ma pierwszeństwo.
	assert.Equal(t, 5, loan.EffectiveDurationDays())

	loan.DurationDays = 0
	// Zapasowe wyprowadzenie z dat daje ten sam wynik.
	assert.Equal(t, 5, loan.EffectiveDurationDays())

	// Granica miesiąca.
	loan.BorrowedAt = time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	loan.DueAt = time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, loan.EffectiveDurationDays())
}
