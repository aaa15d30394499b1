package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHours(t *testing.T) {
	// 2024-01-01 понедельник
	schedule := defaultSchedule(time.Monday)

	tests := []struct {
		name     string
		r        *model.Reservation
		schedule *model.WorkSchedule
		want     error
	}{
		{"inside window", reservation(1, datetime(2024, 1, 1, 19, 0), 60), schedule, nil},
		{"exactly opening", reservation(1, datetime(2024, 1, 1, 8, 0), 60), schedule, nil},
		{"ends at closing", reservation(1, datetime(2024, 1, 1, 22, 0), 60), schedule, nil},
		{"before opening", reservation(1, datetime(2024, 1, 1, 7, 30), 60), schedule, ErrBeforeOpening},
		{"after closing", reservation(1, datetime(2024, 1, 1, 22, 30), 60), schedule, ErrAfterClosing},
		{"no schedule", reservation(1, datetime(2024, 1, 1, 19, 0), 60), nil, ErrNoScheduleForDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHours(tt.r, tt.schedule)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsHoursViolation(err))
		})
	}
}

func TestValidateHours_CrossesMidnight(t *testing.T) {
	night := &model.WorkSchedule{
		Weekday:     time.Friday,
		OpensAt:     18 * time.Hour,
		ClosesAt:    2 * time.Hour,
		SlotMinutes: 60,
	}

	// 2024-01-05 пятница
	assert.NoError(t, ValidateHours(reservation(1, datetime(2024, 1, 5, 23, 30), 120), night))
	assert.ErrorIs(t, ValidateHours(reservation(1, datetime(2024, 1, 5, 23, 30), 180), night), ErrAfterClosing)
}

func TestValidateAllHours_StopsOnFirstViolation(t *testing.T) {
	lookup := func(weekday time.Weekday) *model.WorkSchedule {
		if weekday == time.Sunday {
			return nil
		}
		return defaultSchedule(weekday)
	}

	series := []*model.Reservation{
		reservation(1, datetime(2024, 1, 6, 19, 0), 60), // суббота
		reservation(1, datetime(2024, 1, 7, 19, 0), 60), // воскресенье
	}

	err := ValidateAllHours(series, lookup)
	require.Error(t, err)

	var hv *HoursViolationError
	require.True(t, errors.As(err, &hv))
	assert.Equal(t, time.Sunday, hv.Weekday)
	assert.ErrorIs(t, err, ErrNoScheduleForDay)
}
