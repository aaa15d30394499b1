package handlers

import (
	"time"

	"github.com/Freeeeeet/court_booking/internal/controller/state"
	"github.com/Freeeeeet/court_booking/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	bookingService *service.BookingService
	catalogService *service.CatalogService
	stateManager   *state.Manager
	location       *time.Location
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	bookingService *service.BookingService,
	catalogService *service.CatalogService,
	stateManager *state.Manager,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bookingService: bookingService,
		catalogService: catalogService,
		stateManager:   stateManager,
		location:       location,
		logger:         logger,
	}
}
