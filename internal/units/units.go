// Package units converts metric terroir values for display.
package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/HerbHall/terroir/pkg/models"
)

// System is a unit system for display.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// ParseSystem accepts "metric" or "imperial", case-insensitively.
func ParseSystem(s string) (System, error) {
	switch System(strings.ToLower(strings.TrimSpace(s))) {
	case Metric, "":
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("unknown unit system %q (want metric or imperial)", s)
}

// ToFahrenheit converts °C to whole °F.
func ToFahrenheit(c float64) float64 { return math.Round(c*9/5 + 32) }

// ToInches converts mm to whole inches.
func ToInches(mm float64) float64 { return math.Round(mm / 25.4) }

// ToFeet converts meters to whole feet.
func ToFeet(m float64) float64 { return math.Round(m * 3.281) }

// Quantity is a display value with its unit suffix.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g%s", q.Value, q.Unit)
}

// Display is a TerroirInput rendered in one unit system.
type Display struct {
	Temperature Quantity `json:"temperature"`
	Rainfall    Quantity `json:"rainfall"`
	Altitude    Quantity `json:"altitude"`
	SoilType    string   `json:"soil_type"`
}

// Format renders input in the given system. Metric values pass through
// unrounded.
func Format(input models.TerroirInput, sys System) Display {
	if sys == Imperial {
		return Display{
			Temperature: Quantity{ToFahrenheit(input.Temperature), "°F"},
			Rainfall:    Quantity{ToInches(input.Rainfall), "in"},
			Altitude:    Quantity{ToFeet(input.Altitude), "ft"},
			SoilType:    input.SoilType,
		}
	}
	return Display{
		Temperature: Quantity{input.Temperature, "°C"},
		Rainfall:    Quantity{input.Rainfall, "mm"},
		Altitude:    Quantity{input.Altitude, "m"},
		SoilType:    input.SoilType,
	}
}
