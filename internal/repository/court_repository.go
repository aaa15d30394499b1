package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const courtColumns = `id, name, sport, hourly_price, created_at`

type CourtRepository struct {
	*base.Repository
}

func NewCourtRepository(q base.Querier) *CourtRepository {
	return &CourtRepository{Repository: base.NewRepository(q)}
}

// CreateCourt создаёт новую площадку
func (r *CourtRepository) CreateCourt(ctx context.Context, court *model.Court) error {
	query := `
		INSERT INTO courts (name, sport, hourly_price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, court.Name, court.Sport, court.HourlyPrice).
		Scan(&court.ID, &court.CreatedAt)
	if err != nil {
		return fmt.Errorf("create court: %w", err)
	}

	return nil
}

// GetCourt получает площадку по ID
func (r *CourtRepository) GetCourt(ctx context.Context, id int64) (*model.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE id = $1`

	court, err := scanCourt(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get court by id: %w", err)
	}

	return court, nil
}

// ListCourts получает все площадки, упорядоченные по названию
func (r *CourtRepository) ListCourts(ctx context.Context) ([]*model.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts ORDER BY name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	return collectCourts(rows)
}

// ListCourtsBySport получает площадки для вида спорта
func (r *CourtRepository) ListCourtsBySport(ctx context.Context, sport string) ([]*model.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE lower(sport) = lower($1) ORDER BY name`

	rows, err := r.Query(ctx, query, sport)
	if err != nil {
		return nil, fmt.Errorf("list courts by sport: %w", err)
	}
	return collectCourts(rows)
}

// UpdateCourt обновляет площадку
func (r *CourtRepository) UpdateCourt(ctx context.Context, court *model.Court) error {
	query := `
		UPDATE courts
		SET name = $2, sport = $3, hourly_price = $4
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, court.ID, court.Name, court.Sport, court.HourlyPrice)
	if err != nil {
		return fmt.Errorf("update court: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update court %d: %w", court.ID, model.ErrNotFound)
	}

	return nil
}

// DeleteCourt удаляет площадку, если на неё не ссылаются брони
func (r *CourtRepository) DeleteCourt(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return fmt.Errorf("delete court %d: %w", id, model.ErrCourtInUse)
		}
		return fmt.Errorf("delete court: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete court %d: %w", id, model.ErrNotFound)
	}

	return nil
}

func scanCourt(row pgx.Row) (*model.Court, error) {
	var court model.Court
	err := row.Scan(
		&court.ID,
		&court.Name,
		&court.Sport,
		&court.HourlyPrice,
		&court.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &court, nil
}

func collectCourts(rows pgx.Rows) ([]*model.Court, error) {
	defer rows.Close()

	var courts []*model.Court
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan court: %w", err)
		}
		courts = append(courts, court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courts: %w", err)
	}
	return courts, nil
}
