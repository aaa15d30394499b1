package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *API) listSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := a.schedules.List(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	resp := make([]scheduleResponse, 0, len(schedules))
	for _, ws := range schedules {
		resp = append(resp, newScheduleResponse(ws))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) getSchedule(w http.ResponseWriter, r *http.Request) {
	weekday, err := parseWeekday(chi.URLParam(r, "weekday"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	ws, err := a.schedules.Get(r.Context(), weekday)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newScheduleResponse(ws))
}

func (a *API) putSchedule(w http.ResponseWriter, r *http.Request) {
	weekday, err := parseWeekday(chi.URLParam(r, "weekday"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req scheduleRequest
	if err := a.bind(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	ws, err := req.toModel(weekday)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.schedules.Set(r.Context(), ws); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newScheduleResponse(ws))
}

func (a *API) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	weekday, err := parseWeekday(chi.URLParam(r, "weekday"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if err := a.schedules.Close(r.Context(), weekday); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
