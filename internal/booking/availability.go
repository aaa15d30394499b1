package booking

import (
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
)

// AvailableSlots перебирает слоты от открытия с шагом расписания, пока
// начало слота строго раньше закрытия, и отбрасывает слоты, пересекающиеся
// с существующими бронями площадки. Без расписания возвращает пустой список.
func AvailableSlots(courtID int64, date time.Time, schedule *model.WorkSchedule, existing []*model.Reservation) []time.Time {
	free := []time.Time{}
	if schedule == nil {
		return free
	}

	step := schedule.SlotDuration()
	stepMinutes := int(step / time.Minute)
	closeAt := schedule.CloseOn(date)

	for t := schedule.OpenOn(date); t.Before(closeAt); t = t.Add(step) {
		probe := &model.Reservation{CourtID: courtID, Start: t, DurationMinutes: stepMinutes}

		busy := false
		for _, r := range existing {
			if r.CourtID != courtID {
				continue
			}
			if Overlaps(probe, r) {
				busy = true
				break
			}
		}

		if !busy {
			free = append(free, t)
		}
	}

	return free
}
