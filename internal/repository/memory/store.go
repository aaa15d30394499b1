// Package memory хранилище в памяти процесса для тестов сервисов и API.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/court_booking/internal/booking"
	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/service"
)

type state struct {
	courts       map[int64]model.Court
	clients      map[int64]model.Client
	schedules    map[time.Weekday]model.WorkSchedule
	reservations map[int64]model.Reservation
	nextID       int64
}

func (s *state) clone() *state {
	c := &state{
		courts:       make(map[int64]model.Court, len(s.courts)),
		clients:      make(map[int64]model.Client, len(s.clients)),
		schedules:    make(map[time.Weekday]model.WorkSchedule, len(s.schedules)),
		reservations: make(map[int64]model.Reservation, len(s.reservations)),
		nextID:       s.nextID,
	}
	for k, v := range s.courts {
		c.courts[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.schedules {
		c.schedules[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	return c
}

// Store потокобезопасное хранилище в памяти.
// Транзакции выполняются по одной; при ошибке состояние восстанавливается из снимка.
// Запись вне транзакции ждёт завершения открытой транзакции, поэтому откат
// не затирает чужие изменения.
type Store struct {
	*core
	inTx bool
}

type core struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state

	insertBudget int // -1 = без ограничений
	insertErr    error
	updateErr    error
}

var _ service.Store = (*Store)(nil)

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{core: &core{
		data: &state{
			courts:       make(map[int64]model.Court),
			clients:      make(map[int64]model.Client),
			schedules:    make(map[time.Weekday]model.WorkSchedule),
			reservations: make(map[int64]model.Reservation),
		},
		insertBudget: -1,
	}}
}

// SeedDefaultSchedule открывает все дни недели с 08:00 до 23:00, шаг 60 минут
func (s *Store) SeedDefaultSchedule() {
	defer s.lockWrite()()

	for d := time.Sunday; d <= time.Saturday; d++ {
		s.data.schedules[d] = model.WorkSchedule{
			Weekday:     d,
			OpensAt:     8 * time.Hour,
			ClosesAt:    23 * time.Hour,
			SlotMinutes: model.DefaultSlotMinutes,
		}
	}
}

// FailInsertAfter после n успешных вставок каждая следующая вернёт err
func (s *Store) FailInsertAfter(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertBudget = n
	s.insertErr = err
}

// FailUpdateGroup каждая UpdateGroupID вернёт err
func (s *Store) FailUpdateGroup(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateErr = err
}

// ReservationCount количество сохранённых броней
func (s *Store) ReservationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.reservations)
}

// WithinTx выполняет fn, откатывая все изменения при ошибке.
// Вложенный вызов выполняется в текущей транзакции.
func (s *Store) WithinTx(_ context.Context, fn func(service.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(&Store{core: s.core, inTx: true}); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// lockWrite блокирует данные на запись; вне транзакции сначала ждёт txMu
func (s *Store) lockWrite() func() {
	if !s.inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !s.inTx {
			s.txMu.Unlock()
		}
	}
}

func (s *Store) nextID() int64 {
	s.data.nextID++
	return s.data.nextID
}

// Площадки

func (s *Store) CreateCourt(_ context.Context, court *model.Court) error {
	defer s.lockWrite()()

	court.ID = s.nextID()
	court.CreatedAt = time.Now()
	s.data.courts[court.ID] = *court
	return nil
}

func (s *Store) GetCourt(_ context.Context, id int64) (*model.Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	court, ok := s.data.courts[id]
	if !ok {
		return nil, nil
	}
	return &court, nil
}

func (s *Store) ListCourts(_ context.Context) ([]*model.Court, error) {
	return s.listCourts(func(model.Court) bool { return true }), nil
}

func (s *Store) ListCourtsBySport(_ context.Context, sport string) ([]*model.Court, error) {
	return s.listCourts(func(c model.Court) bool {
		return strings.EqualFold(c.Sport, sport)
	}), nil
}

func (s *Store) listCourts(keep func(model.Court) bool) []*model.Court {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var courts []*model.Court
	for _, c := range s.data.courts {
		if keep(c) {
			court := c
			courts = append(courts, &court)
		}
	}
	sort.Slice(courts, func(i, j int) bool {
		if courts[i].Name == courts[j].Name {
			return courts[i].ID < courts[j].ID
		}
		return courts[i].Name < courts[j].Name
	})
	return courts
}

func (s *Store) UpdateCourt(_ context.Context, court *model.Court) error {
	defer s.lockWrite()()

	old, ok := s.data.courts[court.ID]
	if !ok {
		return fmt.Errorf("update court %d: %w", court.ID, model.ErrNotFound)
	}
	court.CreatedAt = old.CreatedAt
	s.data.courts[court.ID] = *court
	return nil
}

func (s *Store) DeleteCourt(_ context.Context, id int64) error {
	defer s.lockWrite()()

	if _, ok := s.data.courts[id]; !ok {
		return fmt.Errorf("delete court %d: %w", id, model.ErrNotFound)
	}
	for _, r := range s.data.reservations {
		if r.CourtID == id {
			return fmt.Errorf("delete court %d: %w", id, model.ErrCourtInUse)
		}
	}
	delete(s.data.courts, id)
	return nil
}

// Клиенты

func (s *Store) CreateClient(_ context.Context, client *model.Client) error {
	defer s.lockWrite()()

	client.ID = s.nextID()
	client.CreatedAt = time.Now()
	s.data.clients[client.ID] = *client
	return nil
}

func (s *Store) GetClient(_ context.Context, id int64) (*model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.data.clients[id]
	if !ok {
		return nil, nil
	}
	return &client, nil
}

func (s *Store) ListClients(_ context.Context) ([]*model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]*model.Client, 0, len(s.data.clients))
	for _, c := range s.data.clients {
		client := c
		clients = append(clients, &client)
	}
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].Name == clients[j].Name {
			return clients[i].ID < clients[j].ID
		}
		return clients[i].Name < clients[j].Name
	})
	return clients, nil
}

func (s *Store) UpdateClient(_ context.Context, client *model.Client) error {
	defer s.lockWrite()()

	old, ok := s.data.clients[client.ID]
	if !ok {
		return fmt.Errorf("update client %d: %w", client.ID, model.ErrNotFound)
	}
	client.CreatedAt = old.CreatedAt
	s.data.clients[client.ID] = *client
	return nil
}

func (s *Store) DeleteClient(_ context.Context, id int64) error {
	defer s.lockWrite()()

	if _, ok := s.data.clients[id]; !ok {
		return fmt.Errorf("delete client %d: %w", id, model.ErrNotFound)
	}
	for _, r := range s.data.reservations {
		if r.ClientID == id {
			return fmt.Errorf("delete client %d: %w", id, model.ErrClientInUse)
		}
	}
	delete(s.data.clients, id)
	return nil
}

// Расписание

func (s *Store) FetchSchedule(_ context.Context, weekday time.Weekday) (*model.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.data.schedules[weekday]
	if !ok {
		return nil, nil
	}
	return &schedule, nil
}

func (s *Store) ListSchedules(_ context.Context) ([]*model.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var schedules []*model.WorkSchedule
	for d := time.Sunday; d <= time.Saturday; d++ {
		if schedule, ok := s.data.schedules[d]; ok {
			schedules = append(schedules, &schedule)
		}
	}
	return schedules, nil
}

func (s *Store) UpsertSchedule(_ context.Context, schedule *model.WorkSchedule) error {
	defer s.lockWrite()()

	s.data.schedules[schedule.Weekday] = *schedule
	return nil
}

func (s *Store) DeleteSchedule(_ context.Context, weekday time.Weekday) error {
	defer s.lockWrite()()

	if _, ok := s.data.schedules[weekday]; !ok {
		return fmt.Errorf("delete schedule %s: %w", weekday, model.ErrNotFound)
	}
	delete(s.data.schedules, weekday)
	return nil
}

// Брони

func (s *Store) InsertReservation(_ context.Context, r *model.Reservation) (int64, error) {
	defer s.lockWrite()()

	if s.insertBudget == 0 {
		return 0, fmt.Errorf("insert reservation: %w", s.insertErr)
	}
	if s.insertBudget > 0 {
		s.insertBudget--
	}

	r.ID = s.nextID()
	r.CreatedAt = time.Now()
	stored := *r
	stored.Court, stored.Client = nil, nil
	s.data.reservations[r.ID] = stored
	return r.ID, nil
}

func (s *Store) UpdateGroupID(_ context.Context, id int64, groupID model.GroupID) error {
	defer s.lockWrite()()

	if s.updateErr != nil {
		return fmt.Errorf("update group id: %w", s.updateErr)
	}
	r, ok := s.data.reservations[id]
	if !ok {
		return fmt.Errorf("update group id of %d: %w", id, booking.ErrReservationNotFound)
	}
	r.GroupID = groupID
	s.data.reservations[id] = r
	return nil
}

func (s *Store) GetReservation(_ context.Context, id int64) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data.reservations[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *Store) FetchReservationsByDay(ctx context.Context, courtID int64, date time.Time) ([]*model.Reservation, error) {
	from := model.StartOfDay(date)
	return s.FetchReservationsInRange(ctx, courtID, from, from.AddDate(0, 0, 1))
}

func (s *Store) FetchReservationsInRange(_ context.Context, courtID int64, from, to time.Time) ([]*model.Reservation, error) {
	return s.selectReservations(func(r model.Reservation) bool {
		return r.CourtID == courtID && booking.IntervalsOverlap(r.Start, r.End(), from, to)
	}), nil
}

func (s *Store) ListReservationsByDate(_ context.Context, date time.Time) ([]*model.Reservation, error) {
	from := model.StartOfDay(date)
	to := from.AddDate(0, 0, 1)
	reservations := s.selectReservations(func(r model.Reservation) bool {
		return !r.Start.Before(from) && r.Start.Before(to)
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range reservations {
		if court, ok := s.data.courts[r.CourtID]; ok {
			r.Court = &court
		}
		if client, ok := s.data.clients[r.ClientID]; ok {
			r.Client = &client
		}
	}
	return reservations, nil
}

func (s *Store) selectReservations(keep func(model.Reservation) bool) []*model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Reservation
	for _, r := range s.data.reservations {
		if keep(r) {
			res := r
			out = append(out, &res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].ID < out[j].ID
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func (s *Store) DeleteReservation(_ context.Context, id int64) (bool, error) {
	defer s.lockWrite()()

	if _, ok := s.data.reservations[id]; !ok {
		return false, nil
	}
	delete(s.data.reservations, id)
	return true, nil
}

func (s *Store) DeleteGroup(_ context.Context, groupID int64) (int64, error) {
	defer s.lockWrite()()

	var deleted int64
	for id, r := range s.data.reservations {
		if g, ok := r.GroupID.Get(); (ok && g == groupID) || id == groupID {
			delete(s.data.reservations, id)
			deleted++
		}
	}
	return deleted, nil
}
