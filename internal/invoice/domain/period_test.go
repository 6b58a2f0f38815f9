package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriodBounds(t *testing.T) {
	cases := []struct {
		name    string
		month   int
		year    int
		lastDay int
	}{
		{"january", 1, 2024, 31},
		{"april", 4, 2024, 30},
		{"february leap", 2, 2024, 29},
		{"february non-leap", 2, 2023, 28},
		{"february century non-leap", 2, 1900, 28},
		{"february 400-year leap", 2, 2000, 29},
		{"december", 12, 2024, 31},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			period, err := NewPeriod(tc.month, tc.year)
			require.NoError(t, err)
			assert.Equal(t, 1, period.Start.Day())
			assert.Equal(t, tc.lastDay, period.End.Day())
			assert.Equal(t, time.Month(tc.month), period.End.Month())
			assert.Equal(t, tc.year, period.End.Year())
		})
	}
}

func TestNewPeriodInvalidMonth(t *testing.T) {
	_, err := NewPeriod(0, 2024)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = NewPeriod(13, 2024)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestPeriodKey(t *testing.T) {
	period, err := NewPeriod(2, 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", period.Key())
}

func TestOverlaps(t *testing.T) {
	jan, _ := NewPeriod(1, 2024)
	feb, _ := NewPeriod(2, 2024)

	t.Run("same period overlaps", func(t *testing.T) {
		assert.True(t, Overlaps(jan.Start, jan.End, jan.Start, jan.End))
	})

	t.Run("adjacent months do not overlap", func(t *testing.T) {
		// Jan 31 end vs Feb 1 start.
		assert.False(t, Overlaps(jan.Start, jan.End, feb.Start, feb.End))
		assert.False(t, Overlaps(feb.Start, feb.End, jan.Start, jan.End))
	})

	t.Run("partial overlap counts", func(t *testing.T) {
		midJanToMidFeb := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
		assert.True(t, Overlaps(midJanToMidFeb, end, feb.Start, feb.End))
	})

	t.Run("single shared day overlaps", func(t *testing.T) {
		assert.True(t, Overlaps(jan.End, feb.End, jan.Start, jan.End))
	})
}
