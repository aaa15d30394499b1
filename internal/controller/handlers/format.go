package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/court_booking/internal/booking"
	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/service"
	"github.com/shopspring/decimal"
)

const usageBook = "Формат: /book <площадка> <клиент> <YYYY-MM-DD> <HH:MM> <минуты> [weekly <YYYY-MM-DD> <скидка>]"

// FormatPrice форматирует сумму в песо
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func formatCourts(courts []*model.Court) string {
	if len(courts) == 0 {
		return "Площадок пока нет"
	}

	var sb strings.Builder
	sb.WriteString("🏟 Площадки:\n\n")
	for _, c := range courts {
		fmt.Fprintf(&sb, "#%d %s (%s) %s/час\n", c.ID, c.Name, c.Sport, FormatPrice(c.HourlyPrice))
	}
	return sb.String()
}

func formatSlots(courtID int64, date time.Time, slots []time.Time) string {
	if len(slots) == 0 {
		return fmt.Sprintf("На %s свободных слотов на площадке #%d нет", date.Format(dateLayout), courtID)
	}

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Format(clockLayout))
	}
	return fmt.Sprintf("🕐 Свободно на площадке #%d, %s:\n%s",
		courtID, date.Format(dateLayout), strings.Join(times, " "))
}

func formatQuote(tpl *model.ReservationTemplate, quote *service.Quote) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 Площадка #%d, клиент #%d\n", tpl.CourtID, tpl.ClientID)

	if tpl.IsRecurring() {
		fmt.Fprintf(&sb, "Фиксированная: %s с %s по %s, %d мин\n",
			tpl.Start.Format(clockLayout),
			tpl.Start.Format(dateLayout),
			tpl.Recurrence.EndDate.Format(dateLayout),
			tpl.DurationMinutes,
		)
		fmt.Fprintf(&sb, "Занятий: %d, скидка %.0f%%\n", quote.Occurrences, tpl.Recurrence.Discount*100)
		fmt.Fprintf(&sb, "💰 %s за занятие, всего %s\n", FormatPrice(quote.PerOccurrence), FormatPrice(quote.Total))
	} else {
		fmt.Fprintf(&sb, "Разовая: %s, %d мин\n", tpl.Start.Format(dateTimeLayout), tpl.DurationMinutes)
		fmt.Fprintf(&sb, "💰 %s\n", FormatPrice(quote.PerOccurrence))
	}

	sb.WriteString("\n/confirm подтвердить, /discard отменить")
	return sb.String()
}

func formatRegistration(reg *service.Registration) string {
	if groupID, ok := reg.GroupID.Get(); ok {
		return fmt.Sprintf("✅ Фиксированная бронь создана: %d занятий, серия #%d", reg.Count, groupID)
	}
	return fmt.Sprintf("✅ Бронь #%d создана на %s", reg.IDs[0], reg.Starts[0].Format(dateTimeLayout))
}

// formatDay список броней дня; время показывается в локации даты
func formatDay(date time.Time, reservations []*model.Reservation) string {
	loc := date.Location()
	if len(reservations) == 0 {
		return fmt.Sprintf("На %s броней нет", date.Format(dateLayout))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Брони на %s:\n\n", date.Format(dateLayout))
	for _, r := range reservations {
		court, client := fmt.Sprintf("#%d", r.CourtID), fmt.Sprintf("#%d", r.ClientID)
		if r.Court != nil {
			court = r.Court.Name
		}
		if r.Client != nil {
			client = r.Client.Name
		}
		fmt.Fprintf(&sb, "%s-%s %s, %s (#%d)",
			r.Start.In(loc).Format(clockLayout), r.End().In(loc).Format(clockLayout), court, client, r.ID)
		if r.InGroup() {
			sb.WriteString(" 🔁")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatError переводит ошибку движка в сообщение для пользователя
func formatError(err error) string {
	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		times := make([]string, 0, len(conflict.Starts))
		for _, s := range conflict.Starts {
			times = append(times, s.Format(dateTimeLayout))
		}
		return "❌ Время занято:\n" + strings.Join(times, "\n") + "\n\nВыберите другой слот: /slots"
	case errors.Is(err, booking.ErrNoScheduleForDay):
		return "❌ В этот день комплекс не работает"
	case errors.Is(err, booking.ErrBeforeOpening):
		return "❌ Бронь начинается до открытия"
	case errors.Is(err, booking.ErrAfterClosing):
		return "❌ Бронь заканчивается после закрытия"
	case errors.Is(err, booking.ErrEmptySeries):
		return "❌ В выбранном периоде нет ни одного занятия"
	case errors.Is(err, booking.ErrMissingCourtReference):
		return "❌ Площадка не найдена"
	case errors.Is(err, booking.ErrReservationNotFound):
		return "❌ Бронь не найдена"
	case errors.Is(err, booking.ErrInvalidReservation):
		return "❌ Некорректная заявка: проверьте клиента и длительность"
	case errors.Is(err, errUsage):
		return "❌ Неверный формат команды"
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}
