package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/court_booking/internal/repository/base"
	"github.com/Freeeeeet/court_booking/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store хранилище поверх Postgres. Собирает все репозитории над одним
// Querier: пулом или открытой транзакцией.
type Store struct {
	*CourtRepository
	*ClientRepository
	*ScheduleRepository
	*ReservationRepository

	pool *pgxpool.Pool
}

var _ service.Store = (*Store)(nil)

// NewStore создаёт хранилище над пулом соединений
func NewStore(pool *pgxpool.Pool) *Store {
	s := newStore(pool)
	s.pool = pool
	return s
}

func newStore(q base.Querier) *Store {
	return &Store{
		CourtRepository:       NewCourtRepository(q),
		ClientRepository:      NewClientRepository(q),
		ScheduleRepository:    NewScheduleRepository(q),
		ReservationRepository: NewReservationRepository(q),
	}
}

// WithinTx выполняет fn в транзакции. Хранилище, переданное в fn,
// пишет в ту же транзакцию; ошибка fn откатывает всё.
// Внутри уже открытой транзакции fn выполняется в ней же.
func (s *Store) WithinTx(ctx context.Context, fn func(service.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
