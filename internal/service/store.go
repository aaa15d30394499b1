package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
)

// ReservationStore чтение и запись броней, нужные движку бронирования
type ReservationStore interface {
	FetchSchedule(ctx context.Context, weekday time.Weekday) (*model.WorkSchedule, error)
	FetchReservationsByDay(ctx context.Context, courtID int64, date time.Time) ([]*model.Reservation, error)
	FetchReservationsInRange(ctx context.Context, courtID int64, from, to time.Time) ([]*model.Reservation, error)
	ListReservationsByDate(ctx context.Context, date time.Time) ([]*model.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*model.Reservation, error)
	GetCourt(ctx context.Context, id int64) (*model.Court, error)

	InsertReservation(ctx context.Context, r *model.Reservation) (int64, error)
	UpdateGroupID(ctx context.Context, id int64, groupID model.GroupID) error
	DeleteReservation(ctx context.Context, id int64) (bool, error)
	DeleteGroup(ctx context.Context, groupID int64) (int64, error)
}

// CatalogStore площадки и клиенты
type CatalogStore interface {
	CreateCourt(ctx context.Context, court *model.Court) error
	GetCourt(ctx context.Context, id int64) (*model.Court, error)
	ListCourts(ctx context.Context) ([]*model.Court, error)
	ListCourtsBySport(ctx context.Context, sport string) ([]*model.Court, error)
	UpdateCourt(ctx context.Context, court *model.Court) error
	DeleteCourt(ctx context.Context, id int64) error

	CreateClient(ctx context.Context, client *model.Client) error
	GetClient(ctx context.Context, id int64) (*model.Client, error)
	ListClients(ctx context.Context) ([]*model.Client, error)
	UpdateClient(ctx context.Context, client *model.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

// ScheduleStore рабочие часы по дням недели
type ScheduleStore interface {
	FetchSchedule(ctx context.Context, weekday time.Weekday) (*model.WorkSchedule, error)
	ListSchedules(ctx context.Context) ([]*model.WorkSchedule, error)
	UpsertSchedule(ctx context.Context, schedule *model.WorkSchedule) error
	DeleteSchedule(ctx context.Context, weekday time.Weekday) error
}

// Store полное хранилище. Границу транзакции задаёт вызывающий через WithinTx:
// все записи внутри fn либо фиксируются вместе, либо не фиксируются вовсе.
type Store interface {
	ReservationStore
	CatalogStore
	ScheduleStore

	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
