package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNoScheduleForDay      = errors.New("no work schedule for day")
	ErrBeforeOpening         = errors.New("reservation starts before opening")
	ErrAfterClosing          = errors.New("reservation ends after closing")
	ErrConflictDetected      = errors.New("reservation conflicts with existing bookings")
	ErrEmptySeries           = errors.New("recurring reservation has no occurrences")
	ErrMissingCourtReference = errors.New("reservation has no court reference")
	ErrPersistenceFailure    = errors.New("persistence failure")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrInvalidReservation    = errors.New("invalid reservation")
)

// HoursViolationError бронь выходит за рабочие часы.
// Reason всегда один из ErrNoScheduleForDay, ErrBeforeOpening, ErrAfterClosing.
type HoursViolationError struct {
	Reason  error
	Start   time.Time
	Weekday time.Weekday
}

func (e *HoursViolationError) Error() string {
	return fmt.Sprintf("%v: %s (%s)", e.Reason, e.Start.Format("2006-01-02 15:04"), e.Weekday)
}

func (e *HoursViolationError) Unwrap() error {
	return e.Reason
}

// ConflictError перечисляет начала предложенных броней, пересекающихся с существующими
type ConflictError struct {
	Starts []time.Time
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Starts))
	for _, s := range e.Starts {
		parts = append(parts, s.Format("2006-01-02 15:04"))
	}
	return fmt.Sprintf("%v: %s", ErrConflictDetected, strings.Join(parts, ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflictDetected
}

// PersistenceError ошибка хранилища; для многострочной записи означает,
// что транзакция откатана целиком
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrPersistenceFailure, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceFailure, e.Err}
}

// Persistence оборачивает ошибку хранилища, не трогая уже классифицированные
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) || errors.Is(err, ErrConflictDetected) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsHoursViolation нарушение рабочих часов любого вида
func IsHoursViolation(err error) bool {
	var hv *HoursViolationError
	return errors.As(err, &hv)
}
