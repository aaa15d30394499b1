package model

import (
	"fmt"
	"time"
)

// DefaultSlotMinutes шаг сетки, если в расписании он не задан
const DefaultSlotMinutes = 60

// WorkSchedule рабочие часы комплекса на один день недели.
// Отсутствие записи для дня означает, что в этот день комплекс закрыт.
type WorkSchedule struct {
	Weekday     time.Weekday  `json:"weekday"`
	OpensAt     time.Duration `json:"opens_at"`  // смещение от полуночи
	ClosesAt    time.Duration `json:"closes_at"` // если <= OpensAt, закрытие на следующие сутки
	SlotMinutes int           `json:"slot_minutes"`
}

// OpenOn возвращает момент открытия в указанную дату
func (ws *WorkSchedule) OpenOn(date time.Time) time.Time {
	return StartOfDay(date).Add(ws.OpensAt)
}

// CloseOn возвращает момент закрытия для смены, открывшейся в указанную дату
func (ws *WorkSchedule) CloseOn(date time.Time) time.Time {
	closeAt := StartOfDay(date).Add(ws.ClosesAt)
	if ws.ClosesAt <= ws.OpensAt {
		closeAt = closeAt.AddDate(0, 0, 1)
	}
	return closeAt
}

// SlotDuration шаг перебора свободных слотов
func (ws *WorkSchedule) SlotDuration() time.Duration {
	if ws.SlotMinutes <= 0 {
		return DefaultSlotMinutes * time.Minute
	}
	return time.Duration(ws.SlotMinutes) * time.Minute
}

func (ws *WorkSchedule) String() string {
	return fmt.Sprintf("%s %s-%s every %d min",
		ws.Weekday, FormatClock(ws.OpensAt), FormatClock(ws.ClosesAt), ws.SlotMinutes)
}

// StartOfDay обрезает время до полуночи в той же локации
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseClock разбирает "HH:MM" в смещение от полуночи
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatClock форматирует смещение от полуночи как "HH:MM"
func FormatClock(d time.Duration) string {
	d = d % (24 * time.Hour)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int((d%time.Hour)/time.Minute))
}
