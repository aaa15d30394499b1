package booking

import (
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
)

// CourtOf возвращает общую площадку пачки предложенных броней.
// Пустая пачка, бронь без площадки или разные площадки дают ErrMissingCourtReference.
func CourtOf(proposed []*model.Reservation) (int64, error) {
	if len(proposed) == 0 {
		return 0, ErrMissingCourtReference
	}

	courtID := proposed[0].CourtID
	for _, r := range proposed {
		if r.CourtID == 0 || r.CourtID != courtID {
			return 0, ErrMissingCourtReference
		}
	}
	return courtID, nil
}

// Span диапазон [from, to), который нужно выбрать из хранилища, чтобы
// покрыть все предложенные брони: от полуночи первого дня до полуночи
// после последнего окончания.
func Span(proposed []*model.Reservation) (time.Time, time.Time) {
	if len(proposed) == 0 {
		return time.Time{}, time.Time{}
	}

	first, last := proposed[0].Start, proposed[0].End()
	for _, r := range proposed[1:] {
		if r.Start.Before(first) {
			first = r.Start
		}
		if r.End().After(last) {
			last = r.End()
		}
	}

	return model.StartOfDay(first), model.StartOfDay(last).AddDate(0, 0, 1)
}

// FindConflicts возвращает начала тех предложенных броней, которые
// пересекаются хотя бы с одной из существующих. Пустой результат значит,
// что всю пачку можно сохранять.
func FindConflicts(proposed, existing []*model.Reservation) []time.Time {
	var conflicts []time.Time
	for _, p := range proposed {
		for _, e := range existing {
			if Overlaps(p, e) {
				conflicts = append(conflicts, p.Start)
				break
			}
		}
	}
	return conflicts
}
