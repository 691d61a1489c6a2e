// Package simulation scores a terroir query against the wine catalog and
// derives a flavor profile from the best-matching grapes.
package simulation

import (
	"github.com/HerbHall/terroir/pkg/catalog"
	"github.com/HerbHall/terroir/pkg/models"
)

// Engine matches terroir inputs against an injected catalog. It holds no
// mutable state; one Engine may serve any number of goroutines.
type Engine struct {
	cat *catalog.Catalog
}

// NewEngine creates a new matching engine backed by the given catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Simulate scores every region and grape, keeps the top MaxRegions and
// MaxGrapes, and averages the flavor profiles of the kept grapes.
// Identical input always yields identical output.
func (e *Engine) Simulate(input models.TerroirInput) models.SimulationResult {
	regions := TopN(e.ScoreRegions(input), MaxRegions)
	grapes := TopN(e.ScoreGrapes(input), MaxGrapes)

	profiles := make([]models.FlavorProfile, len(grapes))
	for i := range grapes {
		profiles[i] = grapes[i].Entity.FlavorProfile
	}

	return models.SimulationResult{
		MatchedRegions:       regions,
		MatchedGrapes:        grapes,
		DerivedFlavorProfile: AverageProfiles(profiles),
	}
}

// ScoreRegions scores every catalog region in catalog order. Scores are
// rounded to one decimal place.
func (e *Engine) ScoreRegions(input models.TerroirInput) []models.ScoredRegion {
	regions := e.cat.Regions()
	out := make([]models.ScoredRegion, len(regions))
	for i := range regions {
		out[i] = models.ScoredRegion{
			Entity: regions[i],
			Score:  round1(Score(input, regions[i].Climate)),
		}
	}
	return out
}

// ScoreGrapes scores every catalog grape in catalog order. Scores are
// rounded to one decimal place.
func (e *Engine) ScoreGrapes(input models.TerroirInput) []models.ScoredGrape {
	grapes := e.cat.Grapes()
	out := make([]models.ScoredGrape, len(grapes))
	for i := range grapes {
		out[i] = models.ScoredGrape{
			Entity: grapes[i],
			Score:  round1(Score(input, grapes[i].PreferredClimate)),
		}
	}
	return out
}
