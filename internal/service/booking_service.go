package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/court_booking/internal/booking"
	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Состояния регистрации, пишутся в лог на уровне debug
const (
	stateValidating          = "validating"
	stateExpanding           = "expanding"
	stateConflictChecking    = "conflict_checking"
	statePersistingLeader    = "persisting_leader"
	statePersistingFollowers = "persisting_followers"
	stateCommitted           = "committed"
	stateRolledBack          = "rolled_back"
)

// Registration результат успешной регистрации
type Registration struct {
	IDs     []int64         `json:"ids"`
	GroupID model.GroupID   `json:"group_id"`
	Count   int             `json:"count"`
	Cost    decimal.Decimal `json:"cost"` // за одно занятие
	Starts  []time.Time     `json:"starts"`
}

// Quote предварительный расчёт стоимости заявки
type Quote struct {
	PerOccurrence decimal.Decimal `json:"per_occurrence"`
	Occurrences   int             `json:"occurrences"`
	Total         decimal.Decimal `json:"total"`
	Starts        []time.Time     `json:"starts"`
}

type BookingService struct {
	store  Store
	locker Locker
	events EventPublisher
	logger *zap.Logger
}

func NewBookingService(store Store, locker Locker, events EventPublisher, logger *zap.Logger) *BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	return &BookingService{
		store:  store,
		locker: locker,
		events: events,
		logger: logger,
	}
}

// Register регистрирует разовую бронь или фиксированную серию.
// Все проверки выполняются до первой записи; серия сохраняется целиком
// или не сохраняется вовсе.
func (s *BookingService) Register(ctx context.Context, tpl *model.ReservationTemplate) (*Registration, error) {
	log := s.logger.With(
		zap.String("kind", string(tpl.Kind)),
		zap.Int64("court_id", tpl.CourtID),
		zap.Int64("client_id", tpl.ClientID),
	)

	log.Debug("Registration state", zap.String("state", stateValidating))
	court, err := s.validateTemplate(ctx, tpl)
	if err != nil {
		return nil, err
	}

	log.Debug("Registration state", zap.String("state", stateExpanding))
	occurrences := booking.ExpandTemplate(tpl)
	if len(occurrences) == 0 {
		return nil, booking.ErrEmptySeries
	}

	if err := s.validateHours(ctx, occurrences); err != nil {
		return nil, err
	}

	cost := booking.TemplateCost(court, tpl)
	for _, o := range occurrences {
		o.Cost = cost
	}

	courtID, err := booking.CourtOf(occurrences)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, courtID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var reg *Registration
	err = s.store.WithinTx(ctx, func(tx Store) error {
		var err error
		reg, err = s.persistSeries(ctx, log, tx, tpl.IsRecurring(), occurrences)
		return err
	})
	if err != nil {
		log.Debug("Registration state", zap.String("state", stateRolledBack), zap.Error(err))
		return nil, booking.Persistence("commit reservations", err)
	}

	log.Debug("Registration state", zap.String("state", stateCommitted))
	reg.Cost = cost

	log.Info("Reservations registered",
		zap.Int("count", reg.Count),
		zap.Stringer("group_id", reg.GroupID),
		zap.Time("first_start", reg.Starts[0]),
	)

	s.publish(ctx, Event{
		Type:     EventReservationRegistered,
		CourtID:  courtID,
		ClientID: tpl.ClientID,
		IDs:      reg.IDs,
		GroupID:  groupPtr(reg.GroupID),
		Starts:   reg.Starts,
		Cost:     cost,
	})

	return reg, nil
}

// persistSeries проверяет конфликты и пишет брони внутри транзакции.
// Первая бронь серии становится лидером: её id и есть id серии.
func (s *BookingService) persistSeries(ctx context.Context, log *zap.Logger, tx Store, recurring bool, occurrences []*model.Reservation) (*Registration, error) {
	log.Debug("Registration state", zap.String("state", stateConflictChecking))
	courtID, _ := booking.CourtOf(occurrences)
	from, to := booking.Span(occurrences)

	existing, err := tx.FetchReservationsInRange(ctx, courtID, from, to)
	if err != nil {
		return nil, booking.Persistence("fetch reservations", err)
	}
	if starts := booking.FindConflicts(occurrences, existing); len(starts) > 0 {
		return nil, &booking.ConflictError{Starts: starts}
	}

	log.Debug("Registration state", zap.String("state", statePersistingLeader))
	leader := occurrences[0]
	leaderID, err := tx.InsertReservation(ctx, leader)
	if err != nil {
		return nil, booking.Persistence("insert leader", err)
	}

	reg := &Registration{
		IDs:     []int64{leaderID},
		GroupID: model.NoGroup,
		Starts:  []time.Time{leader.Start},
	}

	if recurring {
		reg.GroupID = model.GroupOf(leaderID)
		if err := tx.UpdateGroupID(ctx, leaderID, reg.GroupID); err != nil {
			return nil, booking.Persistence("link leader", err)
		}
		leader.GroupID = reg.GroupID

		log.Debug("Registration state",
			zap.String("state", statePersistingFollowers),
			zap.Int64("group_id", leaderID),
		)
		for _, follower := range occurrences[1:] {
			follower.GroupID = reg.GroupID
			id, err := tx.InsertReservation(ctx, follower)
			if err != nil {
				return nil, booking.Persistence("insert follower", err)
			}
			reg.IDs = append(reg.IDs, id)
			reg.Starts = append(reg.Starts, follower.Start)
		}
	}

	reg.Count = len(reg.IDs)
	return reg, nil
}

// validateTemplate проверяет поля заявки и загружает площадку
func (s *BookingService) validateTemplate(ctx context.Context, tpl *model.ReservationTemplate) (*model.Court, error) {
	if tpl.CourtID <= 0 {
		return nil, booking.ErrMissingCourtReference
	}
	if tpl.ClientID <= 0 {
		return nil, fmt.Errorf("%w: client is required", booking.ErrInvalidReservation)
	}
	if tpl.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", booking.ErrInvalidReservation)
	}
	if tpl.Kind == model.KindRecurring {
		if tpl.Recurrence == nil {
			return nil, fmt.Errorf("%w: recurring reservation without recurrence", booking.ErrInvalidReservation)
		}
		if d := tpl.Recurrence.Discount; d < 0 || d > 1 {
			return nil, fmt.Errorf("%w: discount must be within [0, 1]", booking.ErrInvalidReservation)
		}
	} else if tpl.Kind != model.KindSimple {
		return nil, fmt.Errorf("%w: unknown kind %q", booking.ErrInvalidReservation, tpl.Kind)
	}

	court, err := s.store.GetCourt(ctx, tpl.CourtID)
	if err != nil {
		return nil, booking.Persistence("get court", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %d: %w", tpl.CourtID, booking.ErrMissingCourtReference)
	}

	client, err := s.store.GetClient(ctx, tpl.ClientID)
	if err != nil {
		return nil, booking.Persistence("get client", err)
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client %d not found", booking.ErrInvalidReservation, tpl.ClientID)
	}

	return court, nil
}

// validateHours загружает расписание для каждого дня недели серии один раз
func (s *BookingService) validateHours(ctx context.Context, occurrences []*model.Reservation) error {
	schedules := make(map[time.Weekday]*model.WorkSchedule)
	for _, o := range occurrences {
		weekday := o.Start.Weekday()
		if _, ok := schedules[weekday]; ok {
			continue
		}
		schedule, err := s.store.FetchSchedule(ctx, weekday)
		if err != nil {
			return booking.Persistence("fetch schedule", err)
		}
		schedules[weekday] = schedule
	}

	return booking.ValidateAllHours(occurrences, func(weekday time.Weekday) *model.WorkSchedule {
		return schedules[weekday]
	})
}

// Cancel отменяет бронь. Для брони из серии удаляется вся серия,
// включая лидера. Возвращает количество удалённых броней.
func (s *BookingService) Cancel(ctx context.Context, id int64) (int64, error) {
	var (
		deleted int64
		target  *model.Reservation
	)

	err := s.store.WithinTx(ctx, func(tx Store) error {
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return booking.Persistence("get reservation", err)
		}
		if r == nil {
			return fmt.Errorf("reservation %d: %w", id, booking.ErrReservationNotFound)
		}
		target = r

		if groupID, ok := r.GroupID.Get(); ok {
			deleted, err = tx.DeleteGroup(ctx, groupID)
			if err != nil {
				return booking.Persistence("delete group", err)
			}
			return nil
		}

		ok, err := tx.DeleteReservation(ctx, id)
		if err != nil {
			return booking.Persistence("delete reservation", err)
		}
		if ok {
			deleted = 1
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			return 0, err
		}
		return 0, booking.Persistence("cancel reservation", err)
	}

	s.logger.Info("Reservation canceled",
		zap.Int64("reservation_id", id),
		zap.Stringer("group_id", target.GroupID),
		zap.Int64("deleted", deleted),
	)

	s.publish(ctx, Event{
		Type:     EventReservationCancelled,
		CourtID:  target.CourtID,
		ClientID: target.ClientID,
		IDs:      []int64{id},
		GroupID:  groupPtr(target.GroupID),
		Deleted:  deleted,
	})

	return deleted, nil
}

// AvailableSlots свободные начала слотов площадки на дату.
// Для выходного дня возвращает пустой список.
func (s *BookingService) AvailableSlots(ctx context.Context, courtID int64, date time.Time) ([]time.Time, error) {
	if courtID <= 0 {
		return nil, booking.ErrMissingCourtReference
	}

	schedule, err := s.store.FetchSchedule(ctx, date.Weekday())
	if err != nil {
		return nil, booking.Persistence("fetch schedule", err)
	}
	if schedule == nil {
		return []time.Time{}, nil
	}

	var existing []*model.Reservation
	if closeAt := schedule.CloseOn(date); closeAt.After(model.StartOfDay(date).AddDate(0, 0, 1)) {
		existing, err = s.store.FetchReservationsInRange(ctx, courtID, schedule.OpenOn(date), closeAt)
	} else {
		existing, err = s.store.FetchReservationsByDay(ctx, courtID, date)
	}
	if err != nil {
		return nil, booking.Persistence("fetch reservations", err)
	}

	return booking.AvailableSlots(courtID, date, schedule, existing), nil
}

// EstimateCost стоимость одного занятия по заявке, без записи
func (s *BookingService) EstimateCost(ctx context.Context, tpl *model.ReservationTemplate) (decimal.Decimal, error) {
	court, err := s.courtFor(ctx, tpl)
	if err != nil {
		return decimal.Zero, err
	}
	return booking.TemplateCost(court, tpl), nil
}

// Quote стоимость занятия, число занятий и итог по серии.
// Итог только для показа: в каждой брони хранится стоимость одного занятия.
func (s *BookingService) Quote(ctx context.Context, tpl *model.ReservationTemplate) (*Quote, error) {
	court, err := s.courtFor(ctx, tpl)
	if err != nil {
		return nil, err
	}

	occurrences := booking.ExpandTemplate(tpl)
	if len(occurrences) == 0 {
		return nil, booking.ErrEmptySeries
	}

	per := booking.TemplateCost(court, tpl)
	starts := make([]time.Time, 0, len(occurrences))
	for _, o := range occurrences {
		starts = append(starts, o.Start)
	}

	return &Quote{
		PerOccurrence: per,
		Occurrences:   len(occurrences),
		Total:         per.Mul(decimal.NewFromInt(int64(len(occurrences)))),
		Starts:        starts,
	}, nil
}

// ListDay все брони дня по всем площадкам
func (s *BookingService) ListDay(ctx context.Context, date time.Time) ([]*model.Reservation, error) {
	reservations, err := s.store.ListReservationsByDate(ctx, date)
	if err != nil {
		return nil, booking.Persistence("list reservations", err)
	}
	return reservations, nil
}

// GetReservation бронь по id
func (s *BookingService) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	r, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, booking.Persistence("get reservation", err)
	}
	if r == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, booking.ErrReservationNotFound)
	}
	return r, nil
}

func (s *BookingService) courtFor(ctx context.Context, tpl *model.ReservationTemplate) (*model.Court, error) {
	if tpl.CourtID <= 0 {
		return nil, booking.ErrMissingCourtReference
	}
	court, err := s.store.GetCourt(ctx, tpl.CourtID)
	if err != nil {
		return nil, booking.Persistence("get court", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %d: %w", tpl.CourtID, booking.ErrMissingCourtReference)
	}
	return court, nil
}

// publish отправляет событие после фиксации; ошибка брокера не отменяет бронь
func (s *BookingService) publish(ctx context.Context, event Event) {
	event.OccurredAt = time.Now()
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}

func groupPtr(g model.GroupID) *int64 {
	id, ok := g.Get()
	if !ok {
		return nil
	}
	return &id
}
