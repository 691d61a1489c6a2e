package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HerbHall/terroir/pkg/models"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	nameStyle    = lipgloss.NewStyle().Width(26)
	labelStyle   = lipgloss.NewStyle().Width(12)
	strongScore  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	fairScore    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	weakScore    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func writeJSONOut(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
}

func renderScore(score float64) string {
	s := fmt.Sprintf("%5.1f", score)
	switch {
	case score >= 80:
		return strongScore.Render(s)
	case score >= 50:
		return fairScore.Render(s)
	default:
		return weakScore.Render(s)
	}
}

// profileBar draws a 1-5 attribute as filled and empty blocks.
func profileBar(v float64) string {
	n := int(math.Round(v))
	n = max(0, min(5, n))
	return strings.Repeat("█", n) + mutedStyle.Render(strings.Repeat("░", 5-n))
}

func writeProfile(w io.Writer, p models.FlavorProfile) {
	rows := []struct {
		label string
		v     float64
	}{
		{"Acidity", p.Acidity},
		{"Tannin", p.Tannin},
		{"Body", p.Body},
		{"Fruitiness", p.Fruitiness},
		{"Earthiness", p.Earthiness},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s %s %.1f\n", labelStyle.Render(r.label), profileBar(r.v), r.v)
	}
}

func regionLocation(r models.Region) string {
	if r.StateOrProvince != "" {
		return r.StateOrProvince + ", " + r.Country
	}
	return r.Country
}

func formatRange(r models.Range, unit string) string {
	return fmt.Sprintf("%g-%g%s", r.Low(), r.High(), unit)
}

func writeClimate(w io.Writer, c models.ClimateRange) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Temperature"), formatRange(c.Temperature, "°C"))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Rainfall"), formatRange(c.Rainfall, "mm"))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Altitude"), formatRange(c.Altitude, "m"))
	if len(c.Soils) > 0 {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Soils"), strings.Join(c.Soils, ", "))
	}
}
