package booking

import (
	"github.com/shopspring/decimal"

	"github.com/Freeeeeet/court_booking/internal/model"
)

var minutesPerHour = decimal.NewFromInt(60)

// Cost стоимость одной брони: цена часа * (минуты / 60) * (1 - скидка).
// Для серии это цена одного занятия после скидки, на количество занятий
// она не умножается. Без площадки стоимость нулевая.
func Cost(court *model.Court, durationMinutes int, discount float64) decimal.Decimal {
	if court == nil {
		return decimal.Zero
	}

	hours := decimal.NewFromInt(int64(durationMinutes)).Div(minutesPerHour)
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount))

	return court.HourlyPrice.Mul(hours).Mul(factor).Round(2)
}

// TemplateCost стоимость одного занятия по заявке
func TemplateCost(court *model.Court, tpl *model.ReservationTemplate) decimal.Decimal {
	return Cost(court, tpl.DurationMinutes, tpl.Discount())
}
