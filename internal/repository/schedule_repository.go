package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ScheduleRepository рабочие часы по дням недели
type ScheduleRepository struct {
	*base.Repository
}

func NewScheduleRepository(q base.Querier) *ScheduleRepository {
	return &ScheduleRepository{Repository: base.NewRepository(q)}
}

// FetchSchedule получает расписание дня недели; nil, если день выходной
func (r *ScheduleRepository) FetchSchedule(ctx context.Context, weekday time.Weekday) (*model.WorkSchedule, error) {
	query := `
		SELECT weekday, opens_at, closes_at, slot_minutes
		FROM work_schedules
		WHERE weekday = $1
	`

	schedule, err := scanSchedule(r.QueryRow(ctx, query, int(weekday)))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	return schedule, nil
}

// ListSchedules получает расписание на всю неделю
func (r *ScheduleRepository) ListSchedules(ctx context.Context) ([]*model.WorkSchedule, error) {
	query := `
		SELECT weekday, opens_at, closes_at, slot_minutes
		FROM work_schedules
		ORDER BY weekday
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*model.WorkSchedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	return schedules, rows.Err()
}

// UpsertSchedule создаёт или заменяет расписание дня
func (r *ScheduleRepository) UpsertSchedule(ctx context.Context, schedule *model.WorkSchedule) error {
	query := `
		INSERT INTO work_schedules (weekday, opens_at, closes_at, slot_minutes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (weekday) DO UPDATE
		SET opens_at = EXCLUDED.opens_at,
		    closes_at = EXCLUDED.closes_at,
		    slot_minutes = EXCLUDED.slot_minutes
	`

	_, err := r.ExecAffected(ctx, query,
		int(schedule.Weekday),
		clockValue(schedule.OpensAt),
		clockValue(schedule.ClosesAt),
		schedule.SlotMinutes,
	)
	if err != nil {
		return fmt.Errorf("upsert schedule: %w", err)
	}

	return nil
}

// DeleteSchedule делает день выходным
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, weekday time.Weekday) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM work_schedules WHERE weekday = $1`, int(weekday))
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete schedule %s: %w", weekday, model.ErrNotFound)
	}

	return nil
}

func scanSchedule(row pgx.Row) (*model.WorkSchedule, error) {
	var (
		weekday     int
		opens       pgtype.Time
		closes      pgtype.Time
		slotMinutes int
	)
	if err := row.Scan(&weekday, &opens, &closes, &slotMinutes); err != nil {
		return nil, err
	}

	return &model.WorkSchedule{
		Weekday:     time.Weekday(weekday),
		OpensAt:     time.Duration(opens.Microseconds) * time.Microsecond,
		ClosesAt:    time.Duration(closes.Microseconds) * time.Microsecond,
		SlotMinutes: slotMinutes,
	}, nil
}

func clockValue(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}
