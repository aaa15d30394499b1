package booking

import (
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
)

// GenerateOccurrences возвращает все даты от from до to включительно,
// приходящиеся на weekday. Время суток отбрасывается.
func GenerateOccurrences(weekday time.Weekday, from, to time.Time) []time.Time {
	from = model.StartOfDay(from)
	to = model.StartOfDay(to)

	var dates []time.Time
	if to.Before(from) {
		return dates
	}

	// Сдвигаемся к первому подходящему дню, дальше шагаем по неделе
	offset := (int(weekday) - int(from.Weekday()) + 7) % 7
	for d := from.AddDate(0, 0, offset); !d.After(to); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}

	return dates
}

// ExpandTemplate разворачивает заявку в конкретные брони.
// Разовая даёт одну бронь; фиксированная по одной на каждую дату серии,
// начиная с даты Start и заканчивая EndDate.
func ExpandTemplate(tpl *model.ReservationTemplate) []*model.Reservation {
	if !tpl.IsRecurring() {
		return []*model.Reservation{tpl.Occurrence(tpl.Start)}
	}

	dates := GenerateOccurrences(tpl.Recurrence.Weekday, tpl.Start, tpl.Recurrence.EndDate)
	occurrences := make([]*model.Reservation, 0, len(dates))
	for _, d := range dates {
		occurrences = append(occurrences, tpl.Occurrence(d))
	}
	return occurrences
}
