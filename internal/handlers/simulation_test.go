package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"greenhouse_sim/internal/engine"
	"greenhouse_sim/internal/models"
	"greenhouse_sim/internal/service"
)

func doJSON(t *testing.T, r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := doJSON(t, r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"ok"`)) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/metrics", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
}

func TestSimulateHandler(t *testing.T) {
	sim := &mockSimulation{annual: models.AnnualSimulationResult{TotalYield: 123, NetRevenue: 456}}
	s := &service.Service{Authorization: &mockAuth{parseID: 3}, Simulation: sim}
	r := newTestRouter(s)

	body := `{"greenhouse":{"width":20,"length":50,"gutter_height":4.5,"material_id":"glass"},"climate_id":"coastal","crop_plan":["lettuce"],"density":20}`

	w := doJSON(t, r, http.MethodPost, "/api/v1/simulate", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/simulate", body, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("simulate status=%d body=%s", w.Code, w.Body.String())
	}
	var out models.AnnualSimulationResult
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.TotalYield != 123 || out.NetRevenue != 456 {
		t.Fatalf("unexpected body: %+v", out)
	}
	if sim.lastReq.ClimateID != "coastal" || sim.lastReq.Greenhouse.Width != 20 || sim.lastReq.Density != 20 {
		t.Fatalf("request not decoded: %+v", sim.lastReq)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/simulate", `{"density":"many"}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestSimulateHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"dimension", &engine.DimensionError{Field: "prices", Got: 3, Want: 12}, http.StatusBadRequest},
		{"invalid spec", fmt.Errorf("%w: shading 120", engine.ErrInvalidSpec), http.StatusBadRequest},
		{"invalid request", service.ErrInvalidRequest, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{Authorization: &mockAuth{}, Simulation: &mockSimulation{err: tc.err}}
			w := doJSON(t, newTestRouter(s), http.MethodPost, "/api/v1/simulate", `{}`, "valid")
			if w.Code != tc.want {
				t.Fatalf("status: got %d, want %d", w.Code, tc.want)
			}
			if tc.want == http.StatusInternalServerError && bytes.Contains(w.Body.Bytes(), []byte("boom")) {
				t.Fatal("internal errors must not leak")
			}
		})
	}
}

func TestSimulateDayHandler(t *testing.T) {
	sim := &mockSimulation{day: models.DaySimulationResult{MaxIndoorTemp: 38.5, DiurnalRange: 12}}
	s := &service.Service{Authorization: &mockAuth{}, Simulation: sim}
	r := newTestRouter(s)

	body := `{"greenhouse":{"width":10,"length":10,"gutter_height":4},"hours":[{"hour":12,"temp":33,"solar":2,"wind_speed":1}]}`
	w := doJSON(t, r, http.MethodPost, "/api/v1/simulate/day", body, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(sim.lastDay.Hours) != 1 || sim.lastDay.Hours[0].Solar != 2 {
		t.Fatalf("hours not decoded: %+v", sim.lastDay.Hours)
	}
	var out models.DaySimulationResult
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.MaxIndoorTemp != 38.5 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestCatalogHandler(t *testing.T) {
	snap := service.CatalogSnapshot{Crops: []models.CropProfile{{ID: "lettuce", DisplayName: "Lettuce"}}}
	s := &service.Service{Authorization: &mockAuth{}, Catalog: &mockCatalog{snap: snap}}
	w := doJSON(t, newTestRouter(s), http.MethodGet, "/api/v1/catalog", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var out service.CatalogSnapshot
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if len(out.Crops) != 1 || out.Crops[0].ID != "lettuce" {
		t.Fatalf("unexpected catalog: %+v", out)
	}
}
