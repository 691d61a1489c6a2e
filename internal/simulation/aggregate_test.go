package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HerbHall/terroir/pkg/models"
)

func TestAverageProfiles_Empty(t *testing.T) {
	assert.Equal(t, models.FlavorProfile{Acidity: 3, Tannin: 3, Body: 3, Fruitiness: 3, Earthiness: 3}, AverageProfiles(nil))
	assert.Equal(t, models.NeutralProfile(), AverageProfiles([]models.FlavorProfile{}))
}

func TestAverageProfiles_Single(t *testing.T) {
	p := models.FlavorProfile{Acidity: 4.26, Tannin: 1, Body: 2.5, Fruitiness: 3.04, Earthiness: 5}
	want := models.FlavorProfile{Acidity: 4.3, Tannin: 1, Body: 2.5, Fruitiness: 3, Earthiness: 5}
	got := AverageProfiles([]models.FlavorProfile{p})
	assert.InDelta(t, want.Acidity, got.Acidity, 1e-9)
	assert.InDelta(t, want.Tannin, got.Tannin, 1e-9)
	assert.InDelta(t, want.Body, got.Body, 1e-9)
	assert.InDelta(t, want.Fruitiness, got.Fruitiness, 1e-9)
	assert.InDelta(t, want.Earthiness, got.Earthiness, 1e-9)
}

func TestAverageProfiles_Extremes(t *testing.T) {
	got := AverageProfiles([]models.FlavorProfile{
		{Acidity: 5, Tannin: 5, Body: 5, Fruitiness: 5, Earthiness: 5},
		{Acidity: 1, Tannin: 1, Body: 1, Fruitiness: 1, Earthiness: 1},
	})
	assert.Equal(t, models.NeutralProfile(), got)
}

func TestAverageProfiles_Rounding(t *testing.T) {
	got := AverageProfiles([]models.FlavorProfile{
		{Acidity: 1, Tannin: 2, Body: 3, Fruitiness: 4, Earthiness: 5},
		{Acidity: 2, Tannin: 2, Body: 3, Fruitiness: 4, Earthiness: 5},
		{Acidity: 2, Tannin: 3, Body: 3, Fruitiness: 5, Earthiness: 4},
	})
	// 5/3 = 1.666.. and 7/3 = 2.333.., 13/3 = 4.333.., 14/3 = 4.666..
	assert.InDelta(t, 1.7, got.Acidity, 1e-9)
	assert.InDelta(t, 2.3, got.Tannin, 1e-9)
	assert.InDelta(t, 3.0, got.Body, 1e-9)
	assert.InDelta(t, 4.3, got.Fruitiness, 1e-9)
	assert.InDelta(t, 4.7, got.Earthiness, 1e-9)
}
