package simulation_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/HerbHall/terroir/internal/server"
	"github.com/HerbHall/terroir/internal/simulation"
	"github.com/HerbHall/terroir/internal/testutil"
	"github.com/HerbHall/terroir/pkg/models"
)

func setupHandlerEnv(t *testing.T) *http.ServeMux {
	t.Helper()

	engine := simulation.NewEngine(testutil.DefaultCatalog(t))
	handler := simulation.NewHandler(engine, nil, testutil.Logger(t))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	return v
}

func assertProblem(t *testing.T, w *httptest.ResponseRecorder, status int, problemType string) server.Problem {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	p := decode[server.Problem](t, w)
	if p.Type != problemType {
		t.Errorf("problem type = %q, want %q", p.Type, problemType)
	}
	return p
}

func TestHandleSimulate_QueryDefaults(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/simulate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[simulation.SimulationResponse](t, w)
	if resp.Input != models.DefaultInput() {
		t.Errorf("Input = %+v, want default terroir", resp.Input)
	}
	if len(resp.MatchedRegions) != simulation.MaxRegions {
		t.Fatalf("len(MatchedRegions) = %d, want %d", len(resp.MatchedRegions), simulation.MaxRegions)
	}
	if len(resp.MatchedGrapes) != simulation.MaxGrapes {
		t.Fatalf("len(MatchedGrapes) = %d, want %d", len(resp.MatchedGrapes), simulation.MaxGrapes)
	}
	if got := resp.MatchedRegions[0].Entity.ID; got != "burgundy" {
		t.Errorf("top region = %q, want burgundy", got)
	}
	if got := resp.MatchedGrapes[0].Score; got != 97.0 {
		t.Errorf("top grape score = %g, want 97", got)
	}
	if len(resp.Highlights.Countries) == 0 || resp.Highlights.Countries[0] != "FR" {
		t.Errorf("Highlights.Countries = %v, want FR first", resp.Highlights.Countries)
	}
}

func TestHandleSimulate_QueryParams(t *testing.T) {
	mux := setupHandlerEnv(t)

	q := url.Values{}
	q.Set("temperature", "25")
	q.Set("rainfall", "300")
	q.Set("altitude", "200")
	q.Set("soil_type", "Granite")
	w := doRequest(mux, http.MethodGet, "/api/v1/simulate?"+q.Encode(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[simulation.SimulationResponse](t, w)
	want := models.TerroirInput{Temperature: 25, Rainfall: 300, Altitude: 200, SoilType: "Granite"}
	if resp.Input != want {
		t.Errorf("Input = %+v, want %+v", resp.Input, want)
	}
	for i := 1; i < len(resp.MatchedRegions); i++ {
		if resp.MatchedRegions[i-1].Score < resp.MatchedRegions[i].Score {
			t.Errorf("regions not sorted at %d: %g < %g", i, resp.MatchedRegions[i-1].Score, resp.MatchedRegions[i].Score)
		}
	}
}

func TestHandleSimulate_EmptySoil(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/simulate?soil_type=", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decode[simulation.SimulationResponse](t, w)
	if resp.Input.SoilType != "" {
		t.Errorf("SoilType = %q, want empty", resp.Input.SoilType)
	}
}

func TestHandleSimulate_InvalidQuery(t *testing.T) {
	mux := setupHandlerEnv(t)

	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{"not a number", "temperature=warm", "temperature"},
		{"nan", "rainfall=NaN", "rainfall"},
		{"infinite", "altitude=Inf", "altitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(mux, http.MethodGet, "/api/v1/simulate?"+tt.query, "")
			p := assertProblem(t, w, http.StatusBadRequest, server.ProblemTypeInvalidInput)
			if len(p.InvalidParams) != 1 || p.InvalidParams[0].Name != tt.wantField {
				t.Errorf("invalid_params = %+v, want one entry for %q", p.InvalidParams, tt.wantField)
			}
		})
	}
}

func TestHandleSimulate_Body(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodPost, "/api/v1/simulate", `{"temperature": 14, "soil_type": "Volcanic"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[simulation.SimulationResponse](t, w)
	want := models.TerroirInput{Temperature: 14, Rainfall: 600, Altitude: 300, SoilType: "Volcanic"}
	if resp.Input != want {
		t.Errorf("Input = %+v, want %+v", resp.Input, want)
	}
}

func TestHandleSimulate_InvalidBody(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodPost, "/api/v1/simulate", `{"temperature": "hot"}`)
	p := assertProblem(t, w, http.StatusBadRequest, server.ProblemTypeInvalidInput)
	if len(p.InvalidParams) != 1 || p.InvalidParams[0].Name != "temperature" {
		t.Errorf("invalid_params = %+v, want one entry for temperature", p.InvalidParams)
	}

	w = doRequest(mux, http.MethodPost, "/api/v1/simulate", `{"temperature": `)
	assertProblem(t, w, http.StatusBadRequest, server.ProblemTypeBadRequest)
}

func TestHandleSimulate_MatchesEngine(t *testing.T) {
	mux := setupHandlerEnv(t)
	engine := simulation.NewEngine(testutil.DefaultCatalog(t))

	var body bytes.Buffer
	input := models.TerroirInput{Temperature: 21, Rainfall: 450, Altitude: 900, SoilType: "Sandy"}
	_ = json.NewEncoder(&body).Encode(input)

	w := doRequest(mux, http.MethodPost, "/api/v1/simulate", body.String())
	resp := decode[simulation.SimulationResponse](t, w)
	want := engine.Simulate(input)

	if resp.DerivedFlavorProfile != want.DerivedFlavorProfile {
		t.Errorf("profile = %+v, want %+v", resp.DerivedFlavorProfile, want.DerivedFlavorProfile)
	}
	for i := range want.MatchedGrapes {
		if resp.MatchedGrapes[i].Entity.ID != want.MatchedGrapes[i].Entity.ID {
			t.Errorf("grape[%d] = %q, want %q", i, resp.MatchedGrapes[i].Entity.ID, want.MatchedGrapes[i].Entity.ID)
		}
	}
}

func TestHandleListRegions(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/regions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decode[simulation.ListResponse[models.Region]](t, w)
	if resp.Count != 14 || len(resp.Items) != 14 {
		t.Errorf("Count = %d, len(Items) = %d, want 14", resp.Count, len(resp.Items))
	}
}

func TestHandleGetRegion(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/regions/rioja", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decode[simulation.RegionDetail](t, w)
	if resp.Name != "Rioja" {
		t.Errorf("Name = %q, want Rioja", resp.Name)
	}
	if len(resp.Grapes) >= len(resp.KeyGrapes) {
		t.Errorf("expected unresolvable key grapes to be skipped: %d grapes for %d ids", len(resp.Grapes), len(resp.KeyGrapes))
	}
}

func TestHandleGetRegion_NotFound(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/regions/atlantis", "")
	assertProblem(t, w, http.StatusNotFound, server.ProblemTypeNotFound)
}

func TestHandleListGrapes(t *testing.T) {
	mux := setupHandlerEnv(t)

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{"all", "", 26},
		{"red", "?color=red", 18},
		{"white", "?color=white", 8},
		{"rosé", "?color=" + url.QueryEscape("rosé"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(mux, http.MethodGet, "/api/v1/grapes"+tt.query, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			resp := decode[simulation.ListResponse[models.Grape]](t, w)
			if resp.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", resp.Count, tt.wantCount)
			}
			if resp.Items == nil {
				t.Error("Items should be an empty array, not null")
			}
		})
	}
}

func TestHandleListGrapes_InvalidColor(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/grapes?color=orange", "")
	assertProblem(t, w, http.StatusBadRequest, server.ProblemTypeBadRequest)
}

func TestHandleGetGrape(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/grapes/malbec", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decode[simulation.GrapeDetail](t, w)
	for _, r := range resp.Regions {
		if r.ID == "cahors" {
			t.Error("cahors is not in the catalog and should be skipped")
		}
	}
	if len(resp.Regions) == 0 {
		t.Error("expected at least one resolvable region for malbec")
	}
}

func TestHandleGetGrape_NotFound(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/grapes/unobtainium", "")
	assertProblem(t, w, http.StatusNotFound, server.ProblemTypeNotFound)
}

func TestHandleListSoils(t *testing.T) {
	mux := setupHandlerEnv(t)

	w := doRequest(mux, http.MethodGet, "/api/v1/soils", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	soils := decode[[]string](t, w)
	want := []string{"Limestone", "Clay", "Granite", "Volcanic", "Sandy"}
	if strings.Join(soils, ",") != strings.Join(want, ",") {
		t.Errorf("soils = %v, want %v", soils, want)
	}
}
