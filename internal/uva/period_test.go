package uva

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year     int
		month    int
		expected string
	}{
		{2026, 1, "2026-03-15"},
		{2026, 10, "2026-12-15"},
		{2026, 11, "2027-01-15"},
		{2026, 12, "2027-02-15"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, DueDate(tc.year, tc.month))
	}
}

func TestValidPeriod(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidPeriod(2026, 1))
	assert.True(t, ValidPeriod(2000, 12))
	assert.False(t, ValidPeriod(2026, 0))
	assert.False(t, ValidPeriod(2026, 13))
	assert.False(t, ValidPeriod(1999, 6))
	assert.False(t, ValidPeriod(2101, 6))
}
