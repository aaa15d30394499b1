package booking

import (
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
)

// Overlaps единственный источник истины для конфликтов.
// Брони на разных площадках не пересекаются; если хотя бы у одной
// площадка не указана, сравниваются только интервалы.
// Интервалы полуоткрытые: касание концами пересечением не считается.
func Overlaps(a, b *model.Reservation) bool {
	if a == nil || b == nil {
		return false
	}
	if a.CourtID != 0 && b.CourtID != 0 && a.CourtID != b.CourtID {
		return false
	}
	return IntervalsOverlap(a.Start, a.End(), b.Start, b.End())
}

// IntervalsOverlap пересекаются ли [aStart, aEnd) и [bStart, bEnd)
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
