package simulation

import (
	"math"
	"strings"

	"github.com/HerbHall/terroir/pkg/models"
)

const (
	// temperatureWeight scales the temperature component; it is the most
	// climate-determinative factor.
	temperatureWeight = 1.2
	// weightSum is temperatureWeight plus unit weights for rainfall and altitude.
	weightSum = temperatureWeight + 1 + 1

	// SoilBonus is added when the input soil matches a preferred soil.
	SoilBonus = 15.0
	// MaxScore caps every score.
	MaxScore = 100.0
)

// Score rates how closely input fits climate, in [0, 100].
func Score(input models.TerroirInput, climate models.ClimateRange) float64 {
	tempScore := distanceToScore(midpointDistance(input.Temperature, climate.Temperature)) * temperatureWeight
	rainScore := distanceToScore(midpointDistance(input.Rainfall, climate.Rainfall))
	altScore := distanceToScore(midpointDistance(input.Altitude, climate.Altitude))

	score := (tempScore + rainScore + altScore) / weightSum

	if SoilMatches(input.SoilType, climate.Soils) {
		score += SoilBonus
	}

	return math.Min(MaxScore, score)
}

// midpointDistance is |v - mid| in units of half the range width: 0 at the
// center, 1 at either bound, >1 outside. A zero-width range falls back to
// the absolute distance.
func midpointDistance(v float64, r models.Range) float64 {
	d := math.Abs(v - r.Midpoint())
	if half := r.HalfSpan(); half > 0 {
		return d / half
	}
	return d
}

// distanceToScore decays exponentially from 100 at distance 0.
func distanceToScore(d float64) float64 {
	return 100 * math.Exp(-d)
}

// SoilMatches reports whether the input soil label and any preferred soil
// contain one another, ignoring case.
func SoilMatches(input string, soils []string) bool {
	in := strings.ToLower(input)
	for _, s := range soils {
		soil := strings.ToLower(s)
		if strings.Contains(soil, in) || strings.Contains(in, soil) {
			return true
		}
	}
	return false
}
