package simulation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/terroir/internal/testutil"
	"github.com/HerbHall/terroir/pkg/models"
)

func regionIDs(rs []models.ScoredRegion) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].Entity.ID
	}
	return out
}

func grapeIDs(gs []models.ScoredGrape) []string {
	out := make([]string, len(gs))
	for i := range gs {
		out[i] = gs[i].Entity.ID
	}
	return out
}

func TestEngine_Simulate_DefaultInput(t *testing.T) {
	engine := NewEngine(testutil.DefaultCatalog(t))
	res := engine.Simulate(models.DefaultInput())

	assert.Equal(t,
		[]string{"burgundy", "rioja", "douro_valley", "stellenbosch", "chianti_classico"},
		regionIDs(res.MatchedRegions))
	assert.Equal(t,
		[]string{"cabernet_franc", "merlot", "chenin_blanc", "sauvignon_blanc", "chardonnay", "pinotage", "tempranillo", "viura"},
		grapeIDs(res.MatchedGrapes))

	assert.InDelta(t, 77.2, res.MatchedRegions[0].Score, 1e-9)
	assert.InDelta(t, 97.0, res.MatchedGrapes[0].Score, 1e-9)

	want := models.FlavorProfile{Acidity: 3.3, Tannin: 2.3, Body: 2.8, Fruitiness: 3.3, Earthiness: 2.5}
	got := res.DerivedFlavorProfile
	assert.InDelta(t, want.Acidity, got.Acidity, 1e-9)
	assert.InDelta(t, want.Tannin, got.Tannin, 1e-9)
	assert.InDelta(t, want.Body, got.Body, 1e-9)
	assert.InDelta(t, want.Fruitiness, got.Fruitiness, 1e-9)
	assert.InDelta(t, want.Earthiness, got.Earthiness, 1e-9)
}

func TestEngine_Simulate_Deterministic(t *testing.T) {
	engine := NewEngine(testutil.DefaultCatalog(t))
	first := engine.Simulate(models.DefaultInput())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.Simulate(models.DefaultInput()))
	}
}

func TestEngine_Simulate_NoSoilMatch(t *testing.T) {
	engine := NewEngine(testutil.DefaultCatalog(t))
	in := models.TerroirInput{Temperature: 0, Rainfall: 0, Altitude: 0, SoilType: "Unobtainium"}
	res := engine.Simulate(in)

	for _, r := range engine.ScoreRegions(in) {
		assert.Less(t, r.Score, 100.0, r.Entity.ID)
		assert.InDelta(t, round1(Score(in, r.Entity.Climate)), r.Score, 1e-9)
		assert.False(t, SoilMatches(in.SoilType, r.Entity.Climate.Soils), r.Entity.ID)
	}
	assert.Equal(t, "napa_valley", res.MatchedRegions[0].Entity.ID)
	assert.Equal(t, "syrah", res.MatchedGrapes[0].Entity.ID)
}

func TestEngine_Simulate_SortedAndSized(t *testing.T) {
	engine := NewEngine(testutil.DefaultCatalog(t))
	inputs := []models.TerroirInput{
		models.DefaultInput(),
		{Temperature: 25, Rainfall: 400, Altitude: 200, SoilType: "Granite"},
		{Temperature: 12, Rainfall: 1500, Altitude: 1200, SoilType: "Volcanic"},
		{Temperature: 35, Rainfall: 0, Altitude: 2000, SoilType: "Sandy"},
	}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%+v", in), func(t *testing.T) {
			res := engine.Simulate(in)
			require.Len(t, res.MatchedRegions, MaxRegions)
			require.Len(t, res.MatchedGrapes, MaxGrapes)
			for i := 1; i < len(res.MatchedRegions); i++ {
				assert.GreaterOrEqual(t, res.MatchedRegions[i-1].Score, res.MatchedRegions[i].Score)
			}
			for i := 1; i < len(res.MatchedGrapes); i++ {
				assert.GreaterOrEqual(t, res.MatchedGrapes[i-1].Score, res.MatchedGrapes[i].Score)
			}
		})
	}
}

func TestEngine_Simulate_SmallCatalog(t *testing.T) {
	match := testutil.Climate(models.Range{16, 20}, models.Range{500, 700}, models.Range{200, 400}, "Limestone")
	far := testutil.Climate(models.Range{28, 32}, models.Range{100, 200}, models.Range{1500, 1800}, "Granite")

	cat := testutil.NewCatalog(t,
		[]models.Region{
			testutil.NewRegion(testutil.WithRegionID("far"), testutil.WithRegionClimate(far)),
			testutil.NewRegion(testutil.WithRegionID("near"), testutil.WithRegionClimate(match)),
		},
		[]models.Grape{
			testutil.NewGrape(testutil.WithGrapeID("big"), testutil.WithGrapeClimate(match),
				testutil.WithFlavor(models.FlavorProfile{Acidity: 5, Tannin: 5, Body: 5, Fruitiness: 5, Earthiness: 5})),
			testutil.NewGrape(testutil.WithGrapeID("small"), testutil.WithGrapeClimate(far),
				testutil.WithFlavor(models.FlavorProfile{Acidity: 1, Tannin: 1, Body: 1, Fruitiness: 1, Earthiness: 1})),
		},
	)

	res := NewEngine(cat).Simulate(models.DefaultInput())

	assert.Equal(t, []string{"near", "far"}, regionIDs(res.MatchedRegions), "length is min(5, catalog size)")
	assert.Equal(t, 100.0, res.MatchedRegions[0].Score)
	assert.Equal(t, []string{"big", "small"}, grapeIDs(res.MatchedGrapes))
	assert.Equal(t, models.NeutralProfile(), res.DerivedFlavorProfile)
}

func TestEngine_Simulate_EmptyCatalog(t *testing.T) {
	res := NewEngine(testutil.NewCatalog(t, nil, nil)).Simulate(models.DefaultInput())
	assert.Empty(t, res.MatchedRegions)
	assert.Empty(t, res.MatchedGrapes)
	assert.Equal(t, models.NeutralProfile(), res.DerivedFlavorProfile)
}

func TestEngine_Simulate_Concurrent(t *testing.T) {
	engine := NewEngine(testutil.DefaultCatalog(t))
	want := engine.Simulate(models.DefaultInput())

	done := make(chan models.SimulationResult, 16)
	for i := 0; i < cap(done); i++ {
		go func() { done <- engine.Simulate(models.DefaultInput()) }()
	}
	for i := 0; i < cap(done); i++ {
		assert.Equal(t, want, <-done)
	}
}
