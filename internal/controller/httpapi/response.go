package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/Freeeeeet/court_booking/internal/booking"
	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Conflicts []time.Time `json:"conflicts,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}

// classify код ответа и короткий код ошибки
func classify(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, errBadRequest), errors.As(err, &validationErrs):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, booking.ErrConflictDetected):
		return http.StatusConflict, "conflict_detected"
	case errors.Is(err, model.ErrInUse):
		return http.StatusConflict, "in_use"
	case errors.Is(err, booking.ErrReservationNotFound), errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, booking.ErrNoScheduleForDay):
		return http.StatusUnprocessableEntity, "no_schedule_for_day"
	case errors.Is(err, booking.ErrBeforeOpening):
		return http.StatusUnprocessableEntity, "before_opening"
	case errors.Is(err, booking.ErrAfterClosing):
		return http.StatusUnprocessableEntity, "after_closing"
	case errors.Is(err, booking.ErrEmptySeries):
		return http.StatusUnprocessableEntity, "empty_series"
	case errors.Is(err, booking.ErrMissingCourtReference):
		return http.StatusUnprocessableEntity, "missing_court_reference"
	case errors.Is(err, booking.ErrInvalidReservation),
		errors.Is(err, service.ErrInvalidCatalogEntry),
		errors.Is(err, service.ErrInvalidSchedule):
		return http.StatusUnprocessableEntity, "invalid"
	case errors.Is(err, service.ErrLockTimeout):
		return http.StatusServiceUnavailable, "busy"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	resp := errorResponse{
		Error:     code,
		Message:   err.Error(),
		RequestID: RequestIDFrom(r.Context()),
	}

	var conflict *booking.ConflictError
	if errors.As(err, &conflict) {
		resp.Conflicts = conflict.Starts
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("Request failed",
			zap.String("request_id", resp.RequestID),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		resp.Message = "internal error"
	}

	writeJSON(w, status, resp)
}
