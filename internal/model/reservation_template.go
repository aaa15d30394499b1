package model

import "time"

type ReservationKind string

const (
	KindSimple    ReservationKind = "simple"    // разовая бронь
	KindRecurring ReservationKind = "recurring" // фиксированная, раз в неделю
)

// Recurrence параметры фиксированной брони
type Recurrence struct {
	Weekday  time.Weekday `json:"weekday"`
	EndDate  time.Time    `json:"end_date"` // включительно
	Discount float64      `json:"discount"` // 0..1
}

// ReservationTemplate заявка на бронь от вызывающей стороны.
// Сама по себе не сохраняется: разовая превращается в одну Reservation,
// фиксированная разворачивается в серию.
type ReservationTemplate struct {
	Kind            ReservationKind `json:"kind"`
	CourtID         int64           `json:"court_id"`
	ClientID        int64           `json:"client_id"`
	Start           time.Time       `json:"start"`
	DurationMinutes int             `json:"duration_minutes"`
	Recurrence      *Recurrence     `json:"recurrence,omitempty"` // только для KindRecurring
}

func NewSimpleTemplate(courtID, clientID int64, start time.Time, durationMinutes int) *ReservationTemplate {
	return &ReservationTemplate{
		Kind:            KindSimple,
		CourtID:         courtID,
		ClientID:        clientID,
		Start:           start,
		DurationMinutes: durationMinutes,
	}
}

func NewRecurringTemplate(courtID, clientID int64, start time.Time, durationMinutes int, weekday time.Weekday, endDate time.Time, discount float64) *ReservationTemplate {
	return &ReservationTemplate{
		Kind:            KindRecurring,
		CourtID:         courtID,
		ClientID:        clientID,
		Start:           start,
		DurationMinutes: durationMinutes,
		Recurrence: &Recurrence{
			Weekday:  weekday,
			EndDate:  endDate,
			Discount: discount,
		},
	}
}

// IsRecurring является ли заявка фиксированной
func (t *ReservationTemplate) IsRecurring() bool {
	return t.Kind == KindRecurring && t.Recurrence != nil
}

// Discount скидка заявки, для разовой всегда 0
func (t *ReservationTemplate) Discount() float64 {
	if !t.IsRecurring() {
		return 0
	}
	return t.Recurrence.Discount
}

// Occurrence строит разовую бронь на указанную дату с временем начала заявки
func (t *ReservationTemplate) Occurrence(date time.Time) *Reservation {
	start := time.Date(date.Year(), date.Month(), date.Day(),
		t.Start.Hour(), t.Start.Minute(), t.Start.Second(), 0, t.Start.Location())
	return &Reservation{
		CourtID:         t.CourtID,
		ClientID:        t.ClientID,
		Start:           start,
		DurationMinutes: t.DurationMinutes,
		GroupID:         NoGroup,
	}
}
