package models

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Range is a closed numeric interval [low, high].
type Range [2]float64

// Low returns the lower bound.
func (r Range) Low() float64 { return r[0] }

// High returns the upper bound.
func (r Range) High() float64 { return r[1] }

// Midpoint returns the center of the interval.
func (r Range) Midpoint() float64 { return (r[0] + r[1]) / 2 }

// HalfSpan returns half the width of the interval. Zero for a point range.
func (r Range) HalfSpan() float64 { return (r[1] - r[0]) / 2 }

func (r Range) validate(name string, nonNegative bool) error {
	if r[0] > r[1] {
		return fmt.Errorf("%s: lower bound %g exceeds upper bound %g", name, r[0], r[1])
	}
	if nonNegative && r[0] < 0 {
		return fmt.Errorf("%s: negative bound %g", name, r[0])
	}
	return nil
}

// ClimateRange is the band of growing conditions an entity tolerates or prefers.
type ClimateRange struct {
	// Temperature is the growing-season average in °C.
	Temperature Range `json:"temperature" yaml:"temperature"`
	// Rainfall is annual precipitation in mm.
	Rainfall Range `json:"rainfall" yaml:"rainfall"`
	// Altitude is vineyard elevation in meters above sea level.
	Altitude Range    `json:"altitude" yaml:"altitude"`
	Soils    []string `json:"soils" yaml:"soils"`
}

// Validate checks interval ordering and that rainfall and altitude are non-negative.
func (c ClimateRange) Validate() error {
	return errors.Join(
		c.Temperature.validate("temperature", false),
		c.Rainfall.validate("rainfall", true),
		c.Altitude.validate("altitude", true),
	)
}

// Clone returns a copy that shares no memory with c.
func (c ClimateRange) Clone() ClimateRange {
	c.Soils = slices.Clone(c.Soils)
	return c
}

// TerroirInput is a single point query: the conditions a user dials in.
// Values are metric and are not range-checked.
type TerroirInput struct {
	Temperature float64 `json:"temperature"`
	Rainfall    float64 `json:"rainfall"`
	Altitude    float64 `json:"altitude"`
	SoilType    string  `json:"soil_type"`
}

// FieldError reports one unusable TerroirInput field.
type FieldError struct {
	Field  string `json:"name"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string { return e.Field + " " + e.Reason }

// Validate rejects NaN and infinite measurements. Finite values are
// accepted whatever their magnitude.
func (in TerroirInput) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"temperature", in.Temperature},
		{"rainfall", in.Rainfall},
		{"altitude", in.Altitude},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &FieldError{Field: f.name, Reason: "must be a finite number"}
		}
	}
	return nil
}

// DefaultInput returns the documented starting terroir.
func DefaultInput() TerroirInput {
	return TerroirInput{
		Temperature: 18,
		Rainfall:    600,
		Altitude:    300,
		SoilType:    string(SoilLimestone),
	}
}

// SoilType is one of the soil labels offered to users. The engine accepts
// any free-text label; these are the suggested ones.
type SoilType string

const (
	SoilLimestone SoilType = "Limestone"
	SoilClay      SoilType = "Clay"
	SoilGranite   SoilType = "Granite"
	SoilVolcanic  SoilType = "Volcanic"
	SoilSandy     SoilType = "Sandy"
)

// SoilTypes returns the suggested soil labels in display order.
func SoilTypes() []SoilType {
	return []SoilType{SoilLimestone, SoilClay, SoilGranite, SoilVolcanic, SoilSandy}
}

// FlavorProfile describes sensory character on nominal 1-5 scales.
// Aggregated profiles may hold fractional values.
type FlavorProfile struct {
	Acidity    float64 `json:"acidity" yaml:"acidity"`
	Tannin     float64 `json:"tannin" yaml:"tannin"`
	Body       float64 `json:"body" yaml:"body"`
	Fruitiness float64 `json:"fruitiness" yaml:"fruitiness"`
	Earthiness float64 `json:"earthiness" yaml:"earthiness"`
}

// NeutralProfile is the fallback profile with every attribute at 3.
func NeutralProfile() FlavorProfile {
	return FlavorProfile{Acidity: 3, Tannin: 3, Body: 3, Fruitiness: 3, Earthiness: 3}
}

// Color is the color category of a grape variety.
type Color string

const (
	ColorRed   Color = "red"
	ColorWhite Color = "white"
	ColorRose  Color = "rosé"
)

// Valid reports whether c is a known color.
func (c Color) Valid() bool {
	switch c {
	case ColorRed, ColorWhite, ColorRose:
		return true
	}
	return false
}

// Region is a wine region from the catalog.
type Region struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Country         string       `json:"country" yaml:"country"`
	StateOrProvince string       `json:"state_or_province,omitempty" yaml:"state_or_province"`
	Appellation     string       `json:"appellation" yaml:"appellation"`
	Climate         ClimateRange `json:"climate" yaml:"climate"`
	// KeyGrapes holds grape ids. They are not guaranteed to resolve.
	KeyGrapes   []string `json:"key_grapes" yaml:"key_grapes"`
	Description string   `json:"description" yaml:"description"`
}

// Clone returns a deep copy of r.
func (r Region) Clone() Region {
	r.Climate = r.Climate.Clone()
	r.KeyGrapes = slices.Clone(r.KeyGrapes)
	return r
}

// Grape is a grape variety from the catalog.
type Grape struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color Color  `json:"color" yaml:"color"`
	// TypicalRegions holds region ids. They are not guaranteed to resolve.
	TypicalRegions   []string      `json:"typical_regions" yaml:"typical_regions"`
	PreferredClimate ClimateRange  `json:"preferred_climate" yaml:"preferred_climate"`
	FlavorProfile    FlavorProfile `json:"flavor_profile" yaml:"flavor_profile"`
	Notes            string        `json:"notes" yaml:"notes"`
}

// Clone returns a deep copy of g.
func (g Grape) Clone() Grape {
	g.TypicalRegions = slices.Clone(g.TypicalRegions)
	g.PreferredClimate = g.PreferredClimate.Clone()
	return g
}

// Scored pairs a catalog entity with its match score for one query.
type Scored[T any] struct {
	Entity T       `json:"entity"`
	Score  float64 `json:"score"`
}

type (
	ScoredRegion = Scored[Region]
	ScoredGrape  = Scored[Grape]
)

// SimulationResult is the outcome of matching one TerroirInput against the catalog.
type SimulationResult struct {
	MatchedRegions       []ScoredRegion `json:"matched_regions"`
	MatchedGrapes        []ScoredGrape  `json:"matched_grapes"`
	DerivedFlavorProfile FlavorProfile  `json:"derived_flavor_profile"`
}
