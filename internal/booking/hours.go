package booking

import (
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
)

// ScheduleLookup ищет расписание по дню недели; nil означает выходной
type ScheduleLookup func(weekday time.Weekday) *model.WorkSchedule

// ValidateHours проверяет, что бронь целиком лежит внутри рабочего окна
// дня, в который она начинается. Сравниваются полные дата-время.
func ValidateHours(r *model.Reservation, schedule *model.WorkSchedule) error {
	weekday := r.Start.Weekday()
	if schedule == nil {
		return &HoursViolationError{Reason: ErrNoScheduleForDay, Start: r.Start, Weekday: weekday}
	}

	if r.Start.Before(schedule.OpenOn(r.Start)) {
		return &HoursViolationError{Reason: ErrBeforeOpening, Start: r.Start, Weekday: weekday}
	}
	if r.End().After(schedule.CloseOn(r.Start)) {
		return &HoursViolationError{Reason: ErrAfterClosing, Start: r.Start, Weekday: weekday}
	}

	return nil
}

// ValidateAllHours проверяет каждую бронь серии; первая же ошибка прерывает проверку
func ValidateAllHours(reservations []*model.Reservation, lookup ScheduleLookup) error {
	for _, r := range reservations {
		if err := ValidateHours(r, lookup(r.Start.Weekday())); err != nil {
			return err
		}
	}
	return nil
}
