package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/shopspring/decimal"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type courtRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Sport       string          `json:"sport" validate:"required,max=50"`
	HourlyPrice decimal.Decimal `json:"hourly_price"`
}

type clientRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

type scheduleRequest struct {
	OpensAt     string `json:"opens_at" validate:"required,datetime=15:04"`
	ClosesAt    string `json:"closes_at" validate:"required,datetime=15:04"`
	SlotMinutes int    `json:"slot_minutes" validate:"omitempty,gt=0,lte=1440"`
}

func (req *scheduleRequest) toModel(weekday time.Weekday) (*model.WorkSchedule, error) {
	opens, err := model.ParseClock(req.OpensAt)
	if err != nil {
		return nil, err
	}
	closes, err := model.ParseClock(req.ClosesAt)
	if err != nil {
		return nil, err
	}
	return &model.WorkSchedule{
		Weekday:     weekday,
		OpensAt:     opens,
		ClosesAt:    closes,
		SlotMinutes: req.SlotMinutes,
	}, nil
}

type scheduleResponse struct {
	Weekday     string `json:"weekday"`
	Day         int    `json:"day"`
	OpensAt     string `json:"opens_at"`
	ClosesAt    string `json:"closes_at"`
	SlotMinutes int    `json:"slot_minutes"`
}

func newScheduleResponse(ws *model.WorkSchedule) scheduleResponse {
	return scheduleResponse{
		Weekday:     strings.ToLower(ws.Weekday.String()),
		Day:         int(ws.Weekday),
		OpensAt:     model.FormatClock(ws.OpensAt),
		ClosesAt:    model.FormatClock(ws.ClosesAt),
		SlotMinutes: ws.SlotMinutes,
	}
}

type recurrenceRequest struct {
	EndDate  string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Weekday  *int    `json:"weekday" validate:"omitempty,gte=0,lte=6"`
	Discount float64 `json:"discount" validate:"gte=0,lte=1"`
}

type reservationRequest struct {
	Kind            string             `json:"kind" validate:"omitempty,oneof=simple recurring"`
	CourtID         int64              `json:"court_id" validate:"required,gt=0"`
	ClientID        int64              `json:"client_id" validate:"required,gt=0"`
	Date            string             `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string             `json:"time" validate:"required,datetime=15:04"`
	DurationMinutes int                `json:"duration_minutes" validate:"required,gt=0,lte=1440"`
	Recurrence      *recurrenceRequest `json:"recurrence" validate:"required_if=Kind recurring"`
}

// toTemplate строит заявку в часовом поясе комплекса.
// Без явного дня недели серия идёт по дню недели первой даты.
func (req *reservationRequest) toTemplate(loc *time.Location) (*model.ReservationTemplate, error) {
	start, err := time.ParseInLocation(dateLayout+" "+clockLayout, req.Date+" "+req.Time, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", errBadRequest, err)
	}

	if req.Kind != string(model.KindRecurring) {
		return model.NewSimpleTemplate(req.CourtID, req.ClientID, start, req.DurationMinutes), nil
	}

	until, err := time.ParseInLocation(dateLayout, req.Recurrence.EndDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", errBadRequest, err)
	}
	weekday := start.Weekday()
	if req.Recurrence.Weekday != nil {
		weekday = time.Weekday(*req.Recurrence.Weekday)
	}

	return model.NewRecurringTemplate(req.CourtID, req.ClientID, start, req.DurationMinutes,
		weekday, until, req.Recurrence.Discount), nil
}

type cancelResponse struct {
	Deleted int64 `json:"deleted"`
}

type availabilityResponse struct {
	CourtID int64    `json:"court_id"`
	Date    string   `json:"date"`
	Slots   []string `json:"slots"`
}

// parseWeekday принимает 0..6 (0 = воскресенье) или английское название
func parseWeekday(s string) (time.Weekday, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("%w: weekday %d", errBadRequest, n)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: weekday %q", errBadRequest, s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", errBadRequest, s)
	}
	return id, nil
}
