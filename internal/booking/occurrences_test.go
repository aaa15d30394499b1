package booking

import (
	"testing"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGenerateOccurrences(t *testing.T) {
	t.Run("single matching day", func(t *testing.T) {
		got := GenerateOccurrences(time.Monday, date(2024, 1, 1), date(2024, 1, 1))
		assert.Equal(t, []time.Time{date(2024, 1, 1)}, got)
	})

	t.Run("no matching weekday in range", func(t *testing.T) {
		got := GenerateOccurrences(time.Monday, date(2024, 1, 2), date(2024, 1, 7))
		assert.Empty(t, got)
	})

	t.Run("reversed range", func(t *testing.T) {
		got := GenerateOccurrences(time.Monday, date(2024, 2, 1), date(2024, 1, 1))
		assert.Empty(t, got)
	})

	t.Run("month of wednesdays", func(t *testing.T) {
		got := GenerateOccurrences(time.Wednesday, date(2024, 1, 1), date(2024, 1, 31))
		assert.Equal(t, []time.Time{
			date(2024, 1, 3),
			date(2024, 1, 10),
			date(2024, 1, 17),
			date(2024, 1, 24),
			date(2024, 1, 31),
		}, got)
	})

	t.Run("time of day ignored", func(t *testing.T) {
		got := GenerateOccurrences(time.Monday, datetime(2024, 1, 1, 21, 0), datetime(2024, 1, 8, 6, 0))
		assert.Equal(t, []time.Time{date(2024, 1, 1), date(2024, 1, 8)}, got)
	})

	t.Run("deterministic", func(t *testing.T) {
		a := GenerateOccurrences(time.Friday, date(2024, 1, 1), date(2024, 6, 30))
		b := GenerateOccurrences(time.Friday, date(2024, 1, 1), date(2024, 6, 30))
		assert.Equal(t, a, b)
		for _, d := range a {
			assert.Equal(t, time.Friday, d.Weekday())
		}
	})
}

func TestExpandTemplate(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		tpl := model.NewSimpleTemplate(1, 2, datetime(2024, 1, 1, 19, 0), 90)

		got := ExpandTemplate(tpl)
		require.Len(t, got, 1)
		assert.Equal(t, datetime(2024, 1, 1, 19, 0), got[0].Start)
		assert.Equal(t, 90, got[0].DurationMinutes)
		assert.False(t, got[0].InGroup())
	})

	t.Run("recurring keeps time of day", func(t *testing.T) {
		tpl := model.NewRecurringTemplate(1, 2, datetime(2024, 1, 1, 19, 0), 60, time.Monday, date(2024, 1, 22), 0.1)

		got := ExpandTemplate(tpl)
		require.Len(t, got, 4)
		for i, r := range got {
			assert.Equal(t, datetime(2024, 1, 1+7*i, 19, 0), r.Start)
			assert.Equal(t, int64(1), r.CourtID)
			assert.Equal(t, int64(2), r.ClientID)
		}
	})

	t.Run("recurring with empty range", func(t *testing.T) {
		tpl := model.NewRecurringTemplate(1, 2, datetime(2024, 1, 2, 19, 0), 60, time.Monday, date(2024, 1, 7), 0)
		assert.Empty(t, ExpandTemplate(tpl))
	})
}
