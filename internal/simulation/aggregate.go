package simulation

import "github.com/HerbHall/terroir/pkg/models"

// AverageProfiles returns the per-attribute mean of profiles rounded to one
// decimal place. An empty list yields models.NeutralProfile.
func AverageProfiles(profiles []models.FlavorProfile) models.FlavorProfile {
	if len(profiles) == 0 {
		return models.NeutralProfile()
	}

	var sum models.FlavorProfile
	for _, p := range profiles {
		sum.Acidity += p.Acidity
		sum.Tannin += p.Tannin
		sum.Body += p.Body
		sum.Fruitiness += p.Fruitiness
		sum.Earthiness += p.Earthiness
	}

	n := float64(len(profiles))
	return models.FlavorProfile{
		Acidity:    round1(sum.Acidity / n),
		Tannin:     round1(sum.Tannin / n),
		Body:       round1(sum.Body / n),
		Fruitiness: round1(sum.Fruitiness / n),
		Earthiness: round1(sum.Earthiness / n),
	}
}
