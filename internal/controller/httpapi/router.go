// Package httpapi JSON API поверх сервисов бронирования
package httpapi

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/court_booking/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultRateLimit запросов в секунду с одного IP
const DefaultRateLimit = 50

// API обработчики HTTP запросов
type API struct {
	booking   *service.BookingService
	catalog   *service.CatalogService
	schedules *service.ScheduleService
	location  *time.Location
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewAPI(
	booking *service.BookingService,
	catalog *service.CatalogService,
	schedules *service.ScheduleService,
	location *time.Location,
	logger *zap.Logger,
) *API {
	return &API{
		booking:   booking,
		catalog:   catalog,
		schedules: schedules,
		location:  location,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Router собирает маршруты и middleware
func (a *API) Router(rateLimit int) http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID},
		MaxAge:         300,
	}))
	if rateLimit > 0 {
		router.Use(httprate.LimitByIP(rateLimit, time.Second))
	}
	router.Use(requestID)
	router.Use(a.accessLog)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/courts", func(r chi.Router) {
		r.Get("/", a.listCourts)
		r.Post("/", a.createCourt)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.getCourt)
			r.Put("/", a.updateCourt)
			r.Delete("/", a.deleteCourt)
			r.Get("/availability", a.availability)
		})
	})

	router.Route("/clients", func(r chi.Router) {
		r.Get("/", a.listClients)
		r.Post("/", a.createClient)
		r.Put("/{id}", a.updateClient)
		r.Delete("/{id}", a.deleteClient)
	})

	router.Route("/schedules", func(r chi.Router) {
		r.Get("/", a.listSchedules)
		r.Get("/{weekday}", a.getSchedule)
		r.Put("/{weekday}", a.putSchedule)
		r.Delete("/{weekday}", a.deleteSchedule)
	})

	router.Route("/reservations", func(r chi.Router) {
		r.Get("/", a.listDay)
		r.Post("/", a.register)
		r.Post("/quote", a.quote)
		r.Get("/{id}", a.getReservation)
		r.Delete("/{id}", a.cancel)
	})

	return router
}
