package simulation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/HerbHall/terroir/pkg/models"
)

// Transport labels for simulation metrics.
const (
	TransportHTTP      = "http"
	TransportWebSocket = "websocket"
	TransportMCP       = "mcp"
)

// Metrics contains Prometheus metrics for simulation requests.
type Metrics struct {
	simulationsTotal  *prometheus.CounterVec
	durationSeconds   *prometheus.HistogramVec
	topScore          *prometheus.GaugeVec
	soilLabelsTotal   *prometheus.CounterVec
	invalidInputTotal *prometheus.CounterVec
}

// NewMetrics creates simulation metrics and registers them with registry.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		simulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terroir_simulations_total",
				Help: "Total number of terroir simulations run",
			},
			[]string{"transport"},
		),
		durationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "terroir_simulation_duration_seconds",
				Help:    "Time taken to score the catalog for one input",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
			},
			[]string{"transport"},
		),
		topScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "terroir_simulation_top_score",
				Help: "Score of the best match in the most recent simulation",
			},
			[]string{"kind"}, // kind: region, grape
		),
		soilLabelsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terroir_simulation_soil_label_total",
				Help: "Simulations by requested soil label",
			},
			[]string{"soil"},
		),
		invalidInputTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terroir_simulation_invalid_input_total",
				Help: "Simulation requests rejected before scoring",
			},
			[]string{"transport"},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.simulationsTotal.Describe(ch)
	m.durationSeconds.Describe(ch)
	m.topScore.Describe(ch)
	m.soilLabelsTotal.Describe(ch)
	m.invalidInputTotal.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.simulationsTotal.Collect(ch)
	m.durationSeconds.Collect(ch)
	m.topScore.Collect(ch)
	m.soilLabelsTotal.Collect(ch)
	m.invalidInputTotal.Collect(ch)
}

// RecordSimulation records one completed simulation. Safe on a nil receiver.
func (m *Metrics) RecordSimulation(transport string, input models.TerroirInput, elapsed time.Duration, res *models.SimulationResult) {
	if m == nil {
		return
	}
	m.simulationsTotal.WithLabelValues(transport).Inc()
	m.durationSeconds.WithLabelValues(transport).Observe(elapsed.Seconds())
	m.soilLabelsTotal.WithLabelValues(soilLabel(input.SoilType)).Inc()
	if len(res.MatchedRegions) > 0 {
		m.topScore.WithLabelValues("region").Set(res.MatchedRegions[0].Score)
	}
	if len(res.MatchedGrapes) > 0 {
		m.topScore.WithLabelValues("grape").Set(res.MatchedGrapes[0].Score)
	}
}

// RecordInvalidInput counts a request rejected before scoring. Safe on a nil receiver.
func (m *Metrics) RecordInvalidInput(transport string) {
	if m == nil {
		return
	}
	m.invalidInputTotal.WithLabelValues(transport).Inc()
}

// soilLabel bounds label cardinality to the suggested soil types.
func soilLabel(soil string) string {
	for _, s := range models.SoilTypes() {
		if string(s) == soil {
			return soil
		}
	}
	return "other"
}
