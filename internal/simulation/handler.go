package simulation

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/HerbHall/terroir/internal/geo"
	"github.com/HerbHall/terroir/internal/server"
	"github.com/HerbHall/terroir/pkg/catalog"
	"github.com/HerbHall/terroir/pkg/models"
)

// SimulationResponse is the response for the simulate endpoints.
type SimulationResponse struct {
	Input models.TerroirInput `json:"input"`
	models.SimulationResult
	Highlights geo.HighlightSet `json:"highlights"`
}

// RegionDetail is a region with its resolvable key grapes.
type RegionDetail struct {
	models.Region
	Grapes []models.Grape `json:"grapes"`
}

// GrapeDetail is a grape with its resolvable typical regions.
type GrapeDetail struct {
	models.Grape
	Regions []models.Region `json:"regions"`
}

// ListResponse wraps a catalog listing.
type ListResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

// Handler serves the simulation and catalog API.
type Handler struct {
	engine         *Engine
	metrics        *Metrics
	logger         *zap.Logger
	originPatterns []string
	results        *cache.Cache
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithOriginPatterns sets the host patterns allowed to open the live
// websocket from another origin.
func WithOriginPatterns(patterns ...string) HandlerOption {
	return func(h *Handler) { h.originPatterns = patterns }
}

// WithResultCache memoizes simulation responses per distinct input for ttl.
// A non-positive ttl leaves caching off.
func WithResultCache(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		if ttl > 0 {
			h.results = cache.New(ttl, 2*ttl)
		}
	}
}

// NewHandler creates a new simulation API handler. metrics may be nil.
func NewHandler(engine *Engine, metrics *Metrics, logger *zap.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{engine: engine, metrics: metrics, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/simulate", h.handleSimulateQuery)
	mux.HandleFunc("POST /api/v1/simulate", h.handleSimulateBody)
	mux.HandleFunc("GET /api/v1/simulate/live", h.handleLive)
	mux.HandleFunc("GET /api/v1/regions", h.handleListRegions)
	mux.HandleFunc("GET /api/v1/regions/{id}", h.handleGetRegion)
	mux.HandleFunc("GET /api/v1/grapes", h.handleListGrapes)
	mux.HandleFunc("GET /api/v1/grapes/{id}", h.handleGetGrape)
	mux.HandleFunc("GET /api/v1/soils", h.handleListSoils)
}

// run simulates input and records metrics for the given transport.
func (h *Handler) run(transport string, input models.TerroirInput) SimulationResponse {
	start := time.Now()

	key := resultKey(input)
	if h.results != nil {
		if cached, ok := h.results.Get(key); ok {
			resp := cached.(SimulationResponse)
			h.metrics.RecordSimulation(transport, input, time.Since(start), &resp.SimulationResult)
			return resp
		}
	}

	res := h.engine.Simulate(input)
	resp := SimulationResponse{
		Input:            input,
		SimulationResult: res,
		Highlights:       geo.Highlights(res.MatchedRegions),
	}
	h.metrics.RecordSimulation(transport, input, time.Since(start), &res)

	if h.results != nil {
		h.results.Set(key, resp, cache.DefaultExpiration)
	}
	return resp
}

// resultKey identifies an input exactly, soil label included verbatim.
func resultKey(input models.TerroirInput) string {
	return strconv.FormatFloat(input.Temperature, 'g', -1, 64) + "|" +
		strconv.FormatFloat(input.Rainfall, 'g', -1, 64) + "|" +
		strconv.FormatFloat(input.Altitude, 'g', -1, 64) + "|" +
		input.SoilType
}

// handleSimulateQuery scores the catalog against query parameters.
//
//	@Summary		Simulate terroir
//	@Description	Scores all regions and grapes against the given conditions. Omitted parameters take the default terroir (18°C, 600mm, 300m, Limestone).
//	@Tags			simulate
//	@Produce		json
//	@Param			temperature query number false "Growing-season temperature in °C" default(18)
//	@Param			rainfall query number false "Annual rainfall in mm" default(600)
//	@Param			altitude query number false "Altitude in meters" default(300)
//	@Param			soil_type query string false "Soil label, the same field as soil_type in the POST body" default(Limestone)
//	@Success		200 {object} SimulationResponse
//	@Failure		400 {object} server.Problem
//	@Router			/simulate [get]
func (h *Handler) handleSimulateQuery(w http.ResponseWriter, r *http.Request) {
	input, err := parseQueryInput(r.URL.Query())
	if err != nil {
		h.writeInvalidInput(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.run(TransportHTTP, input))
}

// handleSimulateBody scores the catalog against a JSON TerroirInput.
//
//	@Summary		Simulate terroir
//	@Description	Scores all regions and grapes against a JSON body. Omitted fields take the default terroir.
//	@Tags			simulate
//	@Accept			json
//	@Produce		json
//	@Param			request body models.TerroirInput true "Terroir input"
//	@Success		200 {object} SimulationResponse
//	@Failure		400 {object} server.Problem
//	@Router			/simulate [post]
func (h *Handler) handleSimulateBody(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(json.NewDecoder(r.Body).Decode)
	if err != nil {
		h.writeInvalidInput(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.run(TransportHTTP, input))
}

// handleListRegions returns all catalog regions.
//
//	@Summary		List regions
//	@Tags			catalog
//	@Produce		json
//	@Success		200 {object} ListResponse[models.Region]
//	@Router			/regions [get]
func (h *Handler) handleListRegions(w http.ResponseWriter, _ *http.Request) {
	regions := h.engine.Catalog().Regions()
	writeJSON(w, http.StatusOK, ListResponse[models.Region]{Count: len(regions), Items: regions})
}

// handleGetRegion returns one region with its key grapes.
//
//	@Summary		Get region
//	@Tags			catalog
//	@Produce		json
//	@Param			id path string true "Region id"
//	@Success		200 {object} RegionDetail
//	@Failure		404 {object} server.Problem
//	@Router			/regions/{id} [get]
func (h *Handler) handleGetRegion(w http.ResponseWriter, r *http.Request) {
	cat := h.engine.Catalog()
	region, err := cat.Region(r.PathValue("id"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RegionDetail{Region: region, Grapes: cat.KeyGrapes(region)})
}

// handleListGrapes returns all catalog grapes, optionally filtered by color.
//
//	@Summary		List grapes
//	@Tags			catalog
//	@Produce		json
//	@Param			color query string false "Filter by color (red, white, rosé)"
//	@Success		200 {object} ListResponse[models.Grape]
//	@Failure		400 {object} server.Problem
//	@Router			/grapes [get]
func (h *Handler) handleListGrapes(w http.ResponseWriter, r *http.Request) {
	grapes := h.engine.Catalog().Grapes()

	if c := r.URL.Query().Get("color"); c != "" {
		color := models.Color(c)
		if !color.Valid() {
			server.BadRequest(w, "color must be one of red, white, rosé", r.URL.Path)
			return
		}
		filtered := make([]models.Grape, 0, len(grapes))
		for i := range grapes {
			if grapes[i].Color == color {
				filtered = append(filtered, grapes[i])
			}
		}
		grapes = filtered
	}

	writeJSON(w, http.StatusOK, ListResponse[models.Grape]{Count: len(grapes), Items: grapes})
}

// handleGetGrape returns one grape with its typical regions.
//
//	@Summary		Get grape
//	@Tags			catalog
//	@Produce		json
//	@Param			id path string true "Grape id"
//	@Success		200 {object} GrapeDetail
//	@Failure		404 {object} server.Problem
//	@Router			/grapes/{id} [get]
func (h *Handler) handleGetGrape(w http.ResponseWriter, r *http.Request) {
	cat := h.engine.Catalog()
	grape, err := cat.Grape(r.PathValue("id"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, GrapeDetail{Grape: grape, Regions: cat.TypicalRegions(grape)})
}

// handleListSoils returns the suggested soil labels.
//
//	@Summary		List soils
//	@Description	Suggested soil labels. The soil_type input accepts any free text; these are the labels offered to users.
//	@Tags			catalog
//	@Produce		json
//	@Success		200 {array} string
//	@Router			/soils [get]
func (h *Handler) handleListSoils(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.SoilTypes())
}

// writeInvalidInput answers a terroir query that could not be used. Field
// errors become invalid_params entries; anything else is a malformed body.
func (h *Handler) writeInvalidInput(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.RecordInvalidInput(TransportHTTP)

	var fe *models.FieldError
	if errors.As(err, &fe) {
		server.InvalidInput(w, fe.Error(), r.URL.Path, server.InvalidParam{Name: fe.Field, Reason: fe.Reason})
		return
	}
	server.BadRequest(w, "invalid request body", r.URL.Path)
}

func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		server.NotFound(w, err.Error(), r.URL.Path)
		return
	}
	h.logger.Error("catalog lookup failed", zap.Error(err))
	server.InternalError(w, "catalog lookup failed", r.URL.Path)
}

// parseQueryInput builds a TerroirInput from query parameters, starting
// from the default terroir. Values are not range-checked.
func parseQueryInput(q url.Values) (models.TerroirInput, error) {
	input := models.DefaultInput()

	fields := []struct {
		key string
		dst *float64
	}{
		{"temperature", &input.Temperature},
		{"rainfall", &input.Rainfall},
		{"altitude", &input.Altitude},
	}
	for _, f := range fields {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, &models.FieldError{Field: f.key, Reason: "must be a number"}
		}
		*f.dst = v
	}

	if soil, ok := q["soil_type"]; ok {
		input.SoilType = soil[0]
	}
	return input, input.Validate()
}

// decodeInput decodes a JSON TerroirInput over the default terroir. A value
// of the wrong JSON type is reported as a *models.FieldError.
func decodeInput(decode func(any) error) (models.TerroirInput, error) {
	input := models.DefaultInput()
	if err := decode(&input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return input, &models.FieldError{Field: typeErr.Field, Reason: "has the wrong JSON type"}
		}
		return input, err
	}
	return input, input.Validate()
}

// -- helpers --

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
