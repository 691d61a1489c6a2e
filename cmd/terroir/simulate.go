package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/HerbHall/terroir/internal/geo"
	"github.com/HerbHall/terroir/internal/units"
	"github.com/HerbHall/terroir/pkg/models"
)

type simulateOptions struct {
	input    models.TerroirInput
	units    string
	jsonMode bool
}

// simulateOutput is the --json shape of a simulation.
type simulateOutput struct {
	Input   models.TerroirInput `json:"input"`
	Display units.Display       `json:"display"`
	models.SimulationResult
	Highlights geo.HighlightSet `json:"highlights"`
}

func newSimulateCommand(a *app) *cobra.Command {
	opts := &simulateOptions{input: models.DefaultInput()}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Score the catalog against a terroir",
		Long: `Scores every region and grape against the given conditions and prints
the top 5 regions, the top 8 grapes and their average flavor profile.

Omitted flags take the default terroir: 18°C, 600mm, 300m, Limestone.`,
		Example: `  terroir simulate --temperature 14 --rainfall 900 --soil Clay
  terroir simulate -t 25 --units imperial --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSimulate(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&opts.input.Temperature, "temperature", "t", opts.input.Temperature, "average growing-season temperature in °C")
	f.Float64VarP(&opts.input.Rainfall, "rainfall", "r", opts.input.Rainfall, "annual rainfall in mm")
	f.Float64VarP(&opts.input.Altitude, "altitude", "a", opts.input.Altitude, "altitude in meters")
	f.StringVarP(&opts.input.SoilType, "soil", "s", opts.input.SoilType, "soil label (Limestone, Clay, Granite, Volcanic, Sandy or free text)")
	f.StringVarP(&opts.units, "units", "u", string(units.Metric), "display units: metric or imperial")
	f.BoolVar(&opts.jsonMode, "json", false, "output results as JSON")

	return cmd
}

func (a *app) runSimulate(w io.Writer, opts *simulateOptions) error {
	var fe *models.FieldError
	if err := opts.input.Validate(); errors.As(err, &fe) {
		return fmt.Errorf("--%s %s", fe.Field, fe.Reason)
	}

	sys, err := units.ParseSystem(opts.units)
	if err != nil {
		return err
	}

	res := a.engine.Simulate(opts.input)
	display := units.Format(opts.input, sys)

	if opts.jsonMode {
		return writeJSONOut(w, simulateOutput{
			Input:            opts.input,
			Display:          display,
			SimulationResult: res,
			Highlights:       geo.Highlights(res.MatchedRegions),
		})
	}

	soil := display.SoilType
	if soil == "" {
		soil = "(no soil)"
	}
	fmt.Fprintf(w, "%s %s, %s, %s, %s\n\n", headingStyle.Render("Terroir"),
		display.Temperature, display.Rainfall, display.Altitude, soil)

	heading(w, "Matched regions")
	for i, m := range res.MatchedRegions {
		fmt.Fprintf(w, "  %d. %s %s  %s\n", i+1, nameStyle.Render(m.Entity.Name), renderScore(m.Score), mutedStyle.Render(regionLocation(m.Entity)))
	}
	fmt.Fprintln(w)

	heading(w, "Matched grapes")
	for i, m := range res.MatchedGrapes {
		fmt.Fprintf(w, "  %d. %s %s  %s\n", i+1, nameStyle.Render(m.Entity.Name), renderScore(m.Score), mutedStyle.Render(string(m.Entity.Color)))
	}
	fmt.Fprintln(w)

	heading(w, "Flavor profile")
	writeProfile(w, res.DerivedFlavorProfile)
	return nil
}
