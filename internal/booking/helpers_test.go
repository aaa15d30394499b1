package booking

import (
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
)

func datetime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func reservation(courtID int64, start time.Time, minutes int) *model.Reservation {
	return &model.Reservation{CourtID: courtID, Start: start, DurationMinutes: minutes}
}

func defaultSchedule(weekday time.Weekday) *model.WorkSchedule {
	return &model.WorkSchedule{
		Weekday:     weekday,
		OpensAt:     8 * time.Hour,
		ClosesAt:    23 * time.Hour,
		SlotMinutes: 60,
	}
}
