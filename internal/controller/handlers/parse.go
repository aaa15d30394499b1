package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
)

var errUsage = errors.New("wrong command format")

// commandArgs отбрасывает саму команду и возвращает аргументы
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad id %q", errUsage, s)
	}
	return id, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", errUsage, s)
	}
	return date, nil
}

// parseBookArgs разбирает аргументы /book:
// <площадка> <клиент> <YYYY-MM-DD> <HH:MM> <минуты> [weekly <YYYY-MM-DD> <скидка>]
// День недели серии берётся из даты первого занятия.
func parseBookArgs(args []string, loc *time.Location) (*model.ReservationTemplate, error) {
	if len(args) != 5 && len(args) != 8 {
		return nil, errUsage
	}

	courtID, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	clientID, err := parseID(args[1])
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(dateLayout+" "+clockLayout, args[2]+" "+args[3], loc)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start %q %q", errUsage, args[2], args[3])
	}

	duration, err := strconv.Atoi(args[4])
	if err != nil || duration <= 0 {
		return nil, fmt.Errorf("%w: bad duration %q", errUsage, args[4])
	}

	if len(args) == 5 {
		return model.NewSimpleTemplate(courtID, clientID, start, duration), nil
	}

	if !strings.EqualFold(args[5], weeklyKeyword) {
		return nil, errUsage
	}
	until, err := parseDate(args[6], loc)
	if err != nil {
		return nil, err
	}
	discount, err := parseDiscount(args[7])
	if err != nil {
		return nil, err
	}

	return model.NewRecurringTemplate(courtID, clientID, start, duration, start.Weekday(), until, discount), nil
}

// parseDiscount принимает долю (0.1) или проценты (10%)
func parseDiscount(s string) (float64, error) {
	percent := strings.HasSuffix(s, "%")
	value, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad discount %q", errUsage, s)
	}
	if percent {
		value /= 100
	}
	if value < 0 || value > 1 {
		return 0, fmt.Errorf("%w: discount out of range %q", errUsage, s)
	}
	return value, nil
}
