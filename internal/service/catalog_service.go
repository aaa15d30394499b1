package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidCatalogEntry неполные данные площадки или клиента
var ErrInvalidCatalogEntry = errors.New("invalid catalog entry")

// CatalogService площадки и клиенты
type CatalogService struct {
	store  CatalogStore
	logger *zap.Logger
}

func NewCatalogService(store CatalogStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// AddCourt добавляет площадку
func (s *CatalogService) AddCourt(ctx context.Context, name, sport string, hourlyPrice decimal.Decimal) (*model.Court, error) {
	court := &model.Court{
		Name:        strings.TrimSpace(name),
		Sport:       strings.TrimSpace(sport),
		HourlyPrice: hourlyPrice,
	}
	if err := validateCourt(court); err != nil {
		return nil, err
	}

	if err := s.store.CreateCourt(ctx, court); err != nil {
		return nil, fmt.Errorf("create court: %w", err)
	}

	s.logger.Info("Court added",
		zap.Int64("court_id", court.ID),
		zap.String("name", court.Name),
		zap.String("sport", court.Sport),
	)

	return court, nil
}

// GetCourt получает площадку; model.ErrNotFound, если её нет
func (s *CatalogService) GetCourt(ctx context.Context, id int64) (*model.Court, error) {
	court, err := s.store.GetCourt(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get court: %w", err)
	}
	if court == nil {
		return nil, fmt.Errorf("court %d: %w", id, model.ErrNotFound)
	}
	return court, nil
}

// ListCourts все площадки или только площадки вида спорта
func (s *CatalogService) ListCourts(ctx context.Context, sport string) ([]*model.Court, error) {
	if sport = strings.TrimSpace(sport); sport != "" {
		return s.store.ListCourtsBySport(ctx, sport)
	}
	return s.store.ListCourts(ctx)
}

// UpdateCourt меняет название, вид спорта и цену площадки
func (s *CatalogService) UpdateCourt(ctx context.Context, court *model.Court) error {
	court.Name = strings.TrimSpace(court.Name)
	court.Sport = strings.TrimSpace(court.Sport)
	if err := validateCourt(court); err != nil {
		return err
	}

	if err := s.store.UpdateCourt(ctx, court); err != nil {
		return err
	}

	s.logger.Info("Court updated", zap.Int64("court_id", court.ID))
	return nil
}

// DeleteCourt удаляет площадку; model.ErrCourtInUse, пока есть брони
func (s *CatalogService) DeleteCourt(ctx context.Context, id int64) error {
	if err := s.store.DeleteCourt(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Court deleted", zap.Int64("court_id", id))
	return nil
}

// AddClient добавляет клиента
func (s *CatalogService) AddClient(ctx context.Context, name, phone string) (*model.Client, error) {
	client := &model.Client{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
	if client.Name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidCatalogEntry)
	}

	if err := s.store.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info("Client added",
		zap.Int64("client_id", client.ID),
		zap.String("name", client.Name),
	)

	return client, nil
}

// GetClient получает клиента; model.ErrNotFound, если его нет
func (s *CatalogService) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.store.GetClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %d: %w", id, model.ErrNotFound)
	}
	return client, nil
}

func (s *CatalogService) ListClients(ctx context.Context) ([]*model.Client, error) {
	return s.store.ListClients(ctx)
}

func (s *CatalogService) UpdateClient(ctx context.Context, client *model.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	client.Phone = strings.TrimSpace(client.Phone)
	if client.Name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidCatalogEntry)
	}

	if err := s.store.UpdateClient(ctx, client); err != nil {
		return err
	}

	s.logger.Info("Client updated", zap.Int64("client_id", client.ID))
	return nil
}

// DeleteClient удаляет клиента; model.ErrClientInUse, пока есть брони
func (s *CatalogService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Client deleted", zap.Int64("client_id", id))
	return nil
}

func validateCourt(court *model.Court) error {
	if court.Name == "" {
		return fmt.Errorf("%w: court name is required", ErrInvalidCatalogEntry)
	}
	if court.Sport == "" {
		return fmt.Errorf("%w: court sport is required", ErrInvalidCatalogEntry)
	}
	if court.HourlyPrice.IsNegative() {
		return fmt.Errorf("%w: hourly price must not be negative", ErrInvalidCatalogEntry)
	}
	return nil
}
