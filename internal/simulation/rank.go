package simulation

import (
	"math"
	"sort"

	"github.com/HerbHall/terroir/pkg/models"
)

// Result-set sizes for a simulation.
const (
	MaxRegions = 5
	MaxGrapes  = 8
)

// TopN sorts items by score, highest first, and keeps at most n. Equal
// scores keep their input order. The input slice is reordered in place.
func TopN[T any](items []models.Scored[T], n int) []models.Scored[T] {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Score > items[b].Score
	})
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// round1 rounds to one decimal place, halves away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
