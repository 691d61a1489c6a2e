package units

import (
	"testing"

	"github.com/HerbHall/terroir/pkg/models"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"freezing", ToFahrenheit, 0, 32},
		{"default temperature", ToFahrenheit, 18, 64},
		{"boiling", ToFahrenheit, 100, 212},
		{"default rainfall", ToInches, 600, 24},
		{"one inch", ToInches, 25.4, 1},
		{"default altitude", ToFeet, 300, 984},
		{"sea level", ToFeet, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("convert(%g) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	in := models.DefaultInput()

	metric := Format(in, Metric)
	if metric.Temperature.String() != "18°C" {
		t.Errorf("metric temperature = %s, want 18°C", metric.Temperature)
	}
	if metric.Rainfall.String() != "600mm" {
		t.Errorf("metric rainfall = %s, want 600mm", metric.Rainfall)
	}

	imperial := Format(in, Imperial)
	if imperial.Temperature.String() != "64°F" {
		t.Errorf("imperial temperature = %s, want 64°F", imperial.Temperature)
	}
	if imperial.Altitude.String() != "984ft" {
		t.Errorf("imperial altitude = %s, want 984ft", imperial.Altitude)
	}
	if imperial.SoilType != "Limestone" {
		t.Errorf("soil = %q, want Limestone", imperial.SoilType)
	}
}

func TestParseSystem(t *testing.T) {
	for in, want := range map[string]System{"": Metric, "metric": Metric, "Imperial": Imperial, " IMPERIAL ": Imperial} {
		got, err := ParseSystem(in)
		if err != nil {
			t.Errorf("ParseSystem(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSystem(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseSystem("furlongs"); err == nil {
		t.Error("ParseSystem(furlongs) should fail")
	}
}
