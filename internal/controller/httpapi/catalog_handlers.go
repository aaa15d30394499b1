package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/go-chi/chi/v5"
)

func (a *API) listCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := a.catalog.ListCourts(r.Context(), r.URL.Query().Get("sport"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if courts == nil {
		courts = []*model.Court{}
	}
	writeJSON(w, http.StatusOK, courts)
}

func (a *API) createCourt(w http.ResponseWriter, r *http.Request) {
	var req courtRequest
	if err := a.bind(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	court, err := a.catalog.AddCourt(r.Context(), req.Name, req.Sport, req.HourlyPrice)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, court)
}

func (a *API) getCourt(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	court, err := a.catalog.GetCourt(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, court)
}

func (a *API) updateCourt(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req courtRequest
	if err := a.bind(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	court := &model.Court{ID: id, Name: req.Name, Sport: req.Sport, HourlyPrice: req.HourlyPrice}
	if err := a.catalog.UpdateCourt(r.Context(), court); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, court)
}

func (a *API) deleteCourt(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if err := a.catalog.DeleteCourt(r.Context(), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := a.catalog.ListClients(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if clients == nil {
		clients = []*model.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

func (a *API) createClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := a.bind(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	client, err := a.catalog.AddClient(r.Context(), req.Name, req.Phone)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (a *API) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req clientRequest
	if err := a.bind(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	client := &model.Client{ID: id, Name: req.Name, Phone: req.Phone}
	if err := a.catalog.UpdateClient(r.Context(), client); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (a *API) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if err := a.catalog.DeleteClient(r.Context(), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bind декодирует тело и проверяет теги validate
func (a *API) bind(r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return a.validate.Struct(dst)
}
