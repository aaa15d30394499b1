package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/court_booking/internal/booking"
	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `r.id, r.court_id, r.client_id, r.starts_at, r.duration_minutes, r.group_id, r.cost, r.created_at`

type ReservationRepository struct {
	*base.Repository
}

func NewReservationRepository(q base.Querier) *ReservationRepository {
	return &ReservationRepository{Repository: base.NewRepository(q)}
}

// InsertReservation сохраняет разовую бронь и возвращает её id
func (r *ReservationRepository) InsertReservation(ctx context.Context, res *model.Reservation) (int64, error) {
	query := `
		INSERT INTO reservations (court_id, client_id, starts_at, ends_at, duration_minutes, group_id, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query,
		res.CourtID,
		res.ClientID,
		res.Start,
		res.End(),
		res.DurationMinutes,
		groupValue(res.GroupID),
		res.Cost,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		if base.IsExclusionViolation(err) {
			return 0, &booking.ConflictError{Starts: []time.Time{res.Start}}
		}
		return 0, fmt.Errorf("insert reservation: %w", err)
	}

	return res.ID, nil
}

// UpdateGroupID проставляет брони id серии
func (r *ReservationRepository) UpdateGroupID(ctx context.Context, id int64, groupID model.GroupID) error {
	affected, err := r.ExecAffected(ctx,
		`UPDATE reservations SET group_id = $2 WHERE id = $1`,
		id, groupValue(groupID),
	)
	if err != nil {
		return fmt.Errorf("update group id: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update group id of %d: %w", id, booking.ErrReservationNotFound)
	}

	return nil
}

// GetReservation получает бронь по ID
func (r *ReservationRepository) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations r WHERE r.id = $1`

	res, err := scanReservation(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}

	return res, nil
}

// FetchReservationsByDay брони площадки, задевающие календарный день date
func (r *ReservationRepository) FetchReservationsByDay(ctx context.Context, courtID int64, date time.Time) ([]*model.Reservation, error) {
	from := model.StartOfDay(date)
	return r.FetchReservationsInRange(ctx, courtID, from, from.AddDate(0, 0, 1))
}

// FetchReservationsInRange брони площадки, пересекающие [from, to)
func (r *ReservationRepository) FetchReservationsInRange(ctx context.Context, courtID int64, from, to time.Time) ([]*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations r
		WHERE r.court_id = $1
		  AND r.starts_at < $3
		  AND r.ends_at > $2
		ORDER BY r.starts_at
	`

	rows, err := r.Query(ctx, query, courtID, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch reservations in range: %w", err)
	}
	defer rows.Close()

	var reservations []*model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return reservations, nil
}

// ListReservationsByDate все брони дня по всем площадкам вместе с площадкой и клиентом
func (r *ReservationRepository) ListReservationsByDate(ctx context.Context, date time.Time) ([]*model.Reservation, error) {
	from := model.StartOfDay(date)
	query := `
		SELECT ` + reservationColumns + `,
		       c.name, c.sport, c.hourly_price,
		       cl.name, cl.phone
		FROM reservations r
		JOIN courts c ON c.id = r.court_id
		JOIN clients cl ON cl.id = r.client_id
		WHERE r.starts_at >= $1 AND r.starts_at < $2
		ORDER BY r.starts_at, c.name
	`

	rows, err := r.Query(ctx, query, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list reservations by date: %w", err)
	}
	defer rows.Close()

	var reservations []*model.Reservation
	for rows.Next() {
		var (
			res     model.Reservation
			court   model.Court
			client  model.Client
			groupID *int64
		)
		err := rows.Scan(
			&res.ID, &res.CourtID, &res.ClientID, &res.Start, &res.DurationMinutes,
			&groupID, &res.Cost, &res.CreatedAt,
			&court.Name, &court.Sport, &court.HourlyPrice,
			&client.Name, &client.Phone,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res.GroupID = groupFromValue(groupID)
		court.ID = res.CourtID
		client.ID = res.ClientID
		res.Court = &court
		res.Client = &client
		reservations = append(reservations, &res)
	}

	return reservations, rows.Err()
}

// DeleteReservation удаляет одну бронь
func (r *ReservationRepository) DeleteReservation(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete reservation: %w", err)
	}
	return affected > 0, nil
}

// DeleteGroup удаляет всю серию вместе с лидером
func (r *ReservationRepository) DeleteGroup(ctx context.Context, groupID int64) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM reservations WHERE group_id = $1 OR id = $1`, groupID)
	if err != nil {
		return 0, fmt.Errorf("delete reservation group: %w", err)
	}
	return affected, nil
}

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var (
		res     model.Reservation
		groupID *int64
	)
	err := row.Scan(
		&res.ID,
		&res.CourtID,
		&res.ClientID,
		&res.Start,
		&res.DurationMinutes,
		&groupID,
		&res.Cost,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.GroupID = groupFromValue(groupID)
	return &res, nil
}

func groupValue(g model.GroupID) *int64 {
	id, ok := g.Get()
	if !ok {
		return nil
	}
	return &id
}

func groupFromValue(v *int64) model.GroupID {
	if v == nil {
		return model.NoGroup
	}
	return model.GroupOf(*v)
}
