package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupID_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		A GroupID `json:"a"`
		B GroupID `json:"b"`
	}{A: NoGroup, B: GroupOf(42)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":42}`, string(raw))

	var decoded struct {
		A GroupID `json:"a"`
		B GroupID `json:"b"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.False(t, decoded.A.IsSet())
	id, ok := decoded.B.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestWorkSchedule_Window(t *testing.T) {
	date := time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC)

	day := &WorkSchedule{OpensAt: 8 * time.Hour, ClosesAt: 23 * time.Hour}
	assert.Equal(t, time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC), day.OpenOn(date))
	assert.Equal(t, time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC), day.CloseOn(date))
	assert.Equal(t, time.Hour, day.SlotDuration())

	night := &WorkSchedule{OpensAt: 20 * time.Hour, ClosesAt: 2 * time.Hour, SlotMinutes: 30}
	assert.Equal(t, time.Date(2024, 1, 6, 2, 0, 0, 0, time.UTC), night.CloseOn(date))
	assert.Equal(t, 30*time.Minute, night.SlotDuration())
}

func TestParseAndFormatClock(t *testing.T) {
	d, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour+30*time.Minute, d)
	assert.Equal(t, "08:30", FormatClock(d))

	_, err = ParseClock("8.30")
	assert.Error(t, err)
}

func TestTemplateOccurrence(t *testing.T) {
	tpl := NewRecurringTemplate(1, 2, time.Date(2024, 1, 1, 19, 15, 0, 0, time.UTC), 60,
		time.Monday, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), 0.2)

	occ := tpl.Occurrence(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 8, 19, 15, 0, 0, time.UTC), occ.Start)
	assert.False(t, occ.InGroup())
	assert.Equal(t, time.Date(2024, 1, 8, 20, 15, 0, 0, time.UTC), occ.End())
	assert.InDelta(t, 0.2, tpl.Discount(), 1e-9)

	simple := NewSimpleTemplate(1, 2, time.Now(), 60)
	assert.Zero(t, simple.Discount())
	assert.False(t, simple.IsRecurring())
}
