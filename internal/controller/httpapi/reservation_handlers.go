package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/go-chi/chi/v5"
)

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	tpl, err := a.bindTemplate(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	reg, err := a.booking.Register(r.Context(), tpl)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

func (a *API) quote(w http.ResponseWriter, r *http.Request) {
	tpl, err := a.bindTemplate(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	quote, err := a.booking.Quote(r.Context(), tpl)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (a *API) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	deleted, err := a.booking.Cancel(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelResponse{Deleted: deleted})
}

func (a *API) getReservation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	res, err := a.booking.GetReservation(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) listDay(w http.ResponseWriter, r *http.Request) {
	date, err := a.queryDate(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	reservations, err := a.booking.ListDay(r.Context(), date)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if reservations == nil {
		reservations = []*model.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (a *API) availability(w http.ResponseWriter, r *http.Request) {
	courtID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	date, err := a.queryDate(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	slots, err := a.booking.AvailableSlots(r.Context(), courtID, date)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	resp := availabilityResponse{
		CourtID: courtID,
		Date:    date.Format(dateLayout),
		Slots:   make([]string, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, s.In(a.location).Format(clockLayout))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) bindTemplate(r *http.Request) (*model.ReservationTemplate, error) {
	var req reservationRequest
	if err := a.bind(r, &req); err != nil {
		return nil, err
	}
	return req.toTemplate(a.location)
}

// queryDate дата из ?date=YYYY-MM-DD, по умолчанию сегодня
func (a *API) queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().In(a.location), nil
	}
	date, err := time.ParseInLocation(dateLayout, raw, a.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", errBadRequest, raw)
	}
	return date, nil
}
