package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/court_booking/internal/repository/memory"
	"github.com/Freeeeeet/court_booking/internal/service"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	store.SeedDefaultSchedule()
	logger := zap.NewNop()

	api := NewAPI(
		service.NewBookingService(store, service.NewLocalLocker(), nil, logger),
		service.NewCatalogService(store, logger),
		service.NewScheduleService(store, logger),
		time.UTC,
		logger,
	)

	srv := httptest.NewServer(api.Router(0))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		var raw json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		if len(raw) > 0 && raw[0] == '{' {
			require.NoError(t, json.Unmarshal(raw, &decoded))
		}
	}
	return resp, decoded
}

func seedCatalog(t *testing.T, srv *httptest.Server) {
	t.Helper()

	resp, court := do(t, srv, http.MethodPost, "/courts", map[string]any{
		"name": "Cancha 1", "sport": "futbol", "hourly_price": 12000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.EqualValues(t, 1, court["id"])

	resp, client := do(t, srv, http.MethodPost, "/clients", map[string]any{"name": "Juan", "phone": "1155550000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.EqualValues(t, 2, client["id"])
}

func weeklyRequest() map[string]any {
	return map[string]any{
		"kind":             "recurring",
		"court_id":         1,
		"client_id":        2,
		"date":             "2024-01-01",
		"time":             "19:00",
		"duration_minutes": 60,
		"recurrence":       map[string]any{"end_date": "2024-01-22", "discount": 0.1},
	}
}

func TestAPI_RegisterAndCancelSeries(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv)

	resp, reg := do(t, srv, http.MethodPost, "/reservations", weeklyRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 4, reg["count"])
	assert.EqualValues(t, 3, reg["group_id"])
	assert.Equal(t, "10800", reg["cost"])

	resp, again := do(t, srv, http.MethodPost, "/reservations", weeklyRequest())
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "conflict_detected", again["error"])
	assert.Len(t, again["conflicts"], 4)

	resp, _ = do(t, srv, http.MethodDelete, "/reservations/5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/reservations/5", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CancelReportsDeletedCount(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv)

	resp, _ := do(t, srv, http.MethodPost, "/reservations", weeklyRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, srv, http.MethodDelete, "/reservations/4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 4, body["deleted"])
}

func TestAPI_Availability(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv)

	resp, _ := do(t, srv, http.MethodPost, "/reservations", map[string]any{
		"court_id": 1, "client_id": 2, "date": "2024-01-01", "time": "19:00", "duration_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, srv, http.MethodGet, "/courts/1/availability?date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	slots, ok := body["slots"].([]any)
	require.True(t, ok)
	assert.Len(t, slots, 14)
	assert.NotContains(t, slots, "19:00")
	assert.Equal(t, "08:00", slots[0])
}

func TestAPI_ErrorMapping(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{
			name: "missing fields", method: http.MethodPost, path: "/reservations",
			body: map[string]any{"court_id": 1}, status: http.StatusBadRequest, code: "bad_request",
		},
		{
			name: "unknown field", method: http.MethodPost, path: "/clients",
			body: map[string]any{"name": "Ana", "email": "a@b.c"}, status: http.StatusBadRequest, code: "bad_request",
		},
		{
			name: "before opening", method: http.MethodPost, path: "/reservations",
			body:   map[string]any{"court_id": 1, "client_id": 2, "date": "2024-01-01", "time": "07:00", "duration_minutes": 60},
			status: http.StatusUnprocessableEntity, code: "before_opening",
		},
		{
			name: "unknown court", method: http.MethodPost, path: "/reservations",
			body:   map[string]any{"court_id": 99, "client_id": 2, "date": "2024-01-01", "time": "10:00", "duration_minutes": 60},
			status: http.StatusUnprocessableEntity, code: "missing_court_reference",
		},
		{
			name: "empty series", method: http.MethodPost, path: "/reservations",
			body: map[string]any{
				"kind": "recurring", "court_id": 1, "client_id": 2, "date": "2024-01-02", "time": "10:00",
				"duration_minutes": 60, "recurrence": map[string]any{"end_date": "2024-01-07", "weekday": 1},
			},
			status: http.StatusUnprocessableEntity, code: "empty_series",
		},
		{
			name: "recurring without recurrence", method: http.MethodPost, path: "/reservations",
			body:   map[string]any{"kind": "recurring", "court_id": 1, "client_id": 2, "date": "2024-01-01", "time": "10:00", "duration_minutes": 60},
			status: http.StatusBadRequest, code: "bad_request",
		},
		{
			name: "missing court", method: http.MethodGet, path: "/courts/42",
			status: http.StatusNotFound, code: "not_found",
		},
		{
			name: "bad date", method: http.MethodGet, path: "/reservations?date=01-01-2024",
			status: http.StatusBadRequest, code: "bad_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body["error"])
			assert.NotEmpty(t, resp.Header.Get(headerRequestID))
		})
	}
}

func TestAPI_CourtInUse(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv)

	resp, _ := do(t, srv, http.MethodPost, "/reservations", map[string]any{
		"court_id": 1, "client_id": 2, "date": "2024-01-01", "time": "10:00", "duration_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, srv, http.MethodDelete, "/courts/1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "in_use", body["error"])
}

func TestAPI_Schedules(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPut, "/schedules/friday", map[string]any{
		"opens_at": "18:00", "closes_at": "02:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "friday", body["weekday"])
	assert.EqualValues(t, 60, body["slot_minutes"])

	resp, body = do(t, srv, http.MethodGet, "/schedules/5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "02:00", body["closes_at"])

	resp, _ = do(t, srv, http.MethodDelete, "/schedules/5", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/schedules/5", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/schedules/funday", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_QuoteAndDayListing(t *testing.T) {
	srv := newTestServer(t)
	seedCatalog(t, srv)

	req := weeklyRequest()
	req["duration_minutes"] = 90
	resp, quote := do(t, srv, http.MethodPost, "/reservations/quote", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 4, quote["occurrences"])
	assert.Equal(t, "16200", quote["per_occurrence"])
	assert.Equal(t, "64800", quote["total"])

	resp, _ = do(t, srv, http.MethodPost, "/reservations", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	httpResp, err := srv.Client().Get(srv.URL + "/reservations?date=2024-01-08")
	require.NoError(t, err)
	defer httpResp.Body.Close()

	var day []map[string]any
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(&day))
	require.Len(t, day, 1)
	court, ok := day[0]["court"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Cancha 1", court["name"])
	assert.EqualValues(t, 3, day[0]["group_id"])
}
