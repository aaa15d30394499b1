package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"go.uber.org/zap"
)

// ErrInvalidSchedule некорректное рабочее окно
var ErrInvalidSchedule = errors.New("invalid work schedule")

// ScheduleService рабочие часы заведения
type ScheduleService struct {
	store  ScheduleStore
	logger *zap.Logger
}

func NewScheduleService(store ScheduleStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{store: store, logger: logger}
}

// List расписание всех открытых дней
func (s *ScheduleService) List(ctx context.Context) ([]*model.WorkSchedule, error) {
	return s.store.ListSchedules(ctx)
}

// Get расписание дня недели; model.ErrNotFound для выходного
func (s *ScheduleService) Get(ctx context.Context, weekday time.Weekday) (*model.WorkSchedule, error) {
	schedule, err := s.store.FetchSchedule(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule for %s: %w", weekday, model.ErrNotFound)
	}
	return schedule, nil
}

// Set задаёт рабочее окно дня. ClosesAt <= OpensAt означает закрытие
// на следующий день; нулевой шаг заменяется шагом по умолчанию.
func (s *ScheduleService) Set(ctx context.Context, schedule *model.WorkSchedule) error {
	if schedule.Weekday < time.Sunday || schedule.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d", ErrInvalidSchedule, schedule.Weekday)
	}
	if schedule.OpensAt < 0 || schedule.OpensAt >= 24*time.Hour ||
		schedule.ClosesAt < 0 || schedule.ClosesAt > 24*time.Hour {
		return fmt.Errorf("%w: hours must be within a day", ErrInvalidSchedule)
	}
	if schedule.OpensAt == schedule.ClosesAt {
		return fmt.Errorf("%w: empty window", ErrInvalidSchedule)
	}
	if schedule.SlotMinutes <= 0 {
		schedule.SlotMinutes = model.DefaultSlotMinutes
	}

	if err := s.store.UpsertSchedule(ctx, schedule); err != nil {
		return fmt.Errorf("upsert schedule: %w", err)
	}

	s.logger.Info("Schedule set",
		zap.Stringer("weekday", schedule.Weekday),
		zap.String("window", schedule.String()),
	)
	return nil
}

// Close делает день выходным
func (s *ScheduleService) Close(ctx context.Context, weekday time.Weekday) error {
	if err := s.store.DeleteSchedule(ctx, weekday); err != nil {
		return err
	}

	s.logger.Info("Day closed", zap.Stringer("weekday", weekday))
	return nil
}
