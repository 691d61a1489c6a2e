package testutil

import (
	"testing"

	"github.com/google/uuid"

	"github.com/HerbHall/terroir/pkg/catalog"
	"github.com/HerbHall/terroir/pkg/models"
)

// Climate returns a ClimateRange with the given bounds and soils.
func Climate(temp, rain, alt models.Range, soils ...string) models.ClimateRange {
	return models.ClimateRange{Temperature: temp, Rainfall: rain, Altitude: alt, Soils: soils}
}

// NewRegion returns a Region with sensible defaults, suitable for test fixtures.
// The default climate is centered on models.DefaultInput without a soil match.
func NewRegion(opts ...func(*models.Region)) models.Region {
	r := models.Region{
		ID:          "region-" + uuid.NewString()[:8],
		Name:        "Test Region",
		Country:     "France",
		Appellation: "Test AOC",
		Climate:     Climate(models.Range{14, 22}, models.Range{400, 800}, models.Range{100, 500}, "Gravel"),
		Description: "fixture region",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithRegionID sets the region id.
func WithRegionID(id string) func(*models.Region) {
	return func(r *models.Region) { r.ID = id }
}

// WithRegionName sets the region name.
func WithRegionName(name string) func(*models.Region) {
	return func(r *models.Region) { r.Name = name }
}

// WithLocation sets the country and state or province.
func WithLocation(country, state string) func(*models.Region) {
	return func(r *models.Region) {
		r.Country = country
		r.StateOrProvince = state
	}
}

// WithRegionClimate sets the region climate.
func WithRegionClimate(c models.ClimateRange) func(*models.Region) {
	return func(r *models.Region) { r.Climate = c }
}

// WithKeyGrapes sets the region's grape ids.
func WithKeyGrapes(ids ...string) func(*models.Region) {
	return func(r *models.Region) { r.KeyGrapes = ids }
}

// NewGrape returns a Grape with sensible defaults, suitable for test fixtures.
func NewGrape(opts ...func(*models.Grape)) models.Grape {
	g := models.Grape{
		ID:               "grape-" + uuid.NewString()[:8],
		Name:             "Test Grape",
		Color:            models.ColorRed,
		PreferredClimate: Climate(models.Range{14, 22}, models.Range{400, 800}, models.Range{100, 500}, "Gravel"),
		FlavorProfile:    models.NeutralProfile(),
		Notes:            "fixture grape",
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// WithGrapeID sets the grape id.
func WithGrapeID(id string) func(*models.Grape) {
	return func(g *models.Grape) { g.ID = id }
}

// WithGrapeClimate sets the grape's preferred climate.
func WithGrapeClimate(c models.ClimateRange) func(*models.Grape) {
	return func(g *models.Grape) { g.PreferredClimate = c }
}

// WithFlavor sets the grape's flavor profile.
func WithFlavor(p models.FlavorProfile) func(*models.Grape) {
	return func(g *models.Grape) { g.FlavorProfile = p }
}

// WithTypicalRegions sets the grape's region ids.
func WithTypicalRegions(ids ...string) func(*models.Grape) {
	return func(g *models.Grape) { g.TypicalRegions = ids }
}

// NewCatalog builds a validated catalog from fixtures, failing the test on error.
func NewCatalog(t testing.TB, regions []models.Region, grapes []models.Grape) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(regions, grapes)
	if err != nil {
		t.Fatalf("testutil.NewCatalog: %v", err)
	}
	return cat
}

// DefaultCatalog returns the embedded catalog, failing the test on error.
func DefaultCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("testutil.DefaultCatalog: %v", err)
	}
	return cat
}
