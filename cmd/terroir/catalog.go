package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HerbHall/terroir/pkg/models"
)

func newRegionsCommand(a *app) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "regions [id]",
		Short: "List wine regions or show one region",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return a.showRegion(cmd.OutOrStdout(), args[0], jsonMode)
			}
			return a.listRegions(cmd.OutOrStdout(), jsonMode)
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output as JSON")
	return cmd
}

func newGrapesCommand(a *app) *cobra.Command {
	var (
		jsonMode bool
		color    string
	)

	cmd := &cobra.Command{
		Use:   "grapes [id]",
		Short: "List grape varieties or show one grape",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return a.showGrape(cmd.OutOrStdout(), args[0], jsonMode)
			}
			return a.listGrapes(cmd.OutOrStdout(), models.Color(color), jsonMode)
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output as JSON")
	cmd.Flags().StringVar(&color, "color", "", "only list grapes of this color (red, white, rosé)")
	return cmd
}

func (a *app) listRegions(w io.Writer, jsonMode bool) error {
	regions := a.engine.Catalog().Regions()
	if jsonMode {
		return writeJSONOut(w, regions)
	}

	heading(w, fmt.Sprintf("Regions (%d)", len(regions)))
	for i := range regions {
		fmt.Fprintf(w, "  %s %s\n", nameStyle.Render(regions[i].ID), regions[i].Name+" "+mutedStyle.Render("("+regionLocation(regions[i])+")"))
	}
	return nil
}

func (a *app) showRegion(w io.Writer, id string, jsonMode bool) error {
	cat := a.engine.Catalog()
	region, err := cat.Region(id)
	if err != nil {
		return err
	}
	grapes := cat.KeyGrapes(region)

	if jsonMode {
		return writeJSONOut(w, struct {
			models.Region
			Grapes []models.Grape `json:"grapes"`
		}{region, grapes})
	}

	heading(w, region.Name)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Location"), regionLocation(region))
	if region.Appellation != "" {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Appellation"), region.Appellation)
	}
	writeClimate(w, region.Climate)
	if len(grapes) > 0 {
		names := make([]string, len(grapes))
		for i := range grapes {
			names[i] = grapes[i].Name
		}
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Key grapes"), strings.Join(names, ", "))
	}
	if region.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", region.Description)
	}
	return nil
}

func (a *app) listGrapes(w io.Writer, color models.Color, jsonMode bool) error {
	if color != "" && !color.Valid() {
		return fmt.Errorf("unknown color %q (want red, white or rosé)", color)
	}

	all := a.engine.Catalog().Grapes()
	grapes := make([]models.Grape, 0, len(all))
	for i := range all {
		if color == "" || all[i].Color == color {
			grapes = append(grapes, all[i])
		}
	}

	if jsonMode {
		return writeJSONOut(w, grapes)
	}

	heading(w, fmt.Sprintf("Grapes (%d)", len(grapes)))
	for i := range grapes {
		fmt.Fprintf(w, "  %s %s\n", nameStyle.Render(grapes[i].ID), grapes[i].Name+" "+mutedStyle.Render("("+string(grapes[i].Color)+")"))
	}
	return nil
}

func (a *app) showGrape(w io.Writer, id string, jsonMode bool) error {
	cat := a.engine.Catalog()
	grape, err := cat.Grape(id)
	if err != nil {
		return err
	}
	regions := cat.TypicalRegions(grape)

	if jsonMode {
		return writeJSONOut(w, struct {
			models.Grape
			Regions []models.Region `json:"regions"`
		}{grape, regions})
	}

	heading(w, fmt.Sprintf("%s (%s)", grape.Name, grape.Color))
	writeClimate(w, grape.PreferredClimate)
	if len(regions) > 0 {
		names := make([]string, len(regions))
		for i := range regions {
			names[i] = regions[i].Name
		}
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Regions"), strings.Join(names, ", "))
	}
	fmt.Fprintln(w)
	heading(w, "Flavor profile")
	writeProfile(w, grape.FlavorProfile)
	if grape.Notes != "" {
		fmt.Fprintf(w, "\n  %s\n", grape.Notes)
	}
	return nil
}
