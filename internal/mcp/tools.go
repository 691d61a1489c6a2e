package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/HerbHall/terroir/internal/geo"
	"github.com/HerbHall/terroir/internal/simulation"
	"github.com/HerbHall/terroir/internal/units"
	"github.com/HerbHall/terroir/pkg/models"
)

// SimulateInput is the input schema for the simulate tool. Omitted values
// take the default terroir.
type SimulateInput struct {
	Temperature *float64 `json:"temperature,omitempty" jsonschema:"average growing-season temperature in degrees Celsius (default 18)"`
	Rainfall    *float64 `json:"rainfall,omitempty" jsonschema:"annual rainfall in millimeters (default 600)"`
	Altitude    *float64 `json:"altitude,omitempty" jsonschema:"vineyard altitude in meters (default 300)"`
	SoilType    *string  `json:"soil_type,omitempty" jsonschema:"soil label such as Limestone, Clay, Granite, Volcanic or Sandy (default Limestone)"`
	Units       string   `json:"units,omitempty" jsonschema:"unit system for the display block: metric or imperial (default metric)"`
}

// ScoredEntry is a matched region or grape.
type ScoredEntry struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Country string  `json:"country,omitempty"`
	Color   string  `json:"color,omitempty"`
}

// SimulateOutput is the output schema for the simulate tool.
type SimulateOutput struct {
	Input                models.TerroirInput  `json:"input"`
	Display              units.Display        `json:"display"`
	MatchedRegions       []ScoredEntry        `json:"matched_regions"`
	MatchedGrapes        []ScoredEntry        `json:"matched_grapes"`
	DerivedFlavorProfile models.FlavorProfile `json:"derived_flavor_profile"`
	Countries            []string             `json:"countries"`
	States               []string             `json:"states"`
}

// ListRegionsInput is the input schema for the list_regions tool.
type ListRegionsInput struct {
	Country string `json:"country,omitempty" jsonschema:"only return regions in this country"`
}

// RegionSummary is a region without its climate detail.
type RegionSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Appellation string `json:"appellation,omitempty"`
}

// ListRegionsOutput is the output schema for the list_regions tool.
type ListRegionsOutput struct {
	Regions []RegionSummary `json:"regions"`
	Count   int             `json:"count"`
}

// GetRegionInput is the input schema for the get_region tool.
type GetRegionInput struct {
	ID string `json:"id" jsonschema:"region id, for example burgundy"`
}

// GetRegionOutput is the output schema for the get_region tool.
type GetRegionOutput struct {
	Region models.Region  `json:"region"`
	Grapes []models.Grape `json:"grapes"`
}

// ListGrapesInput is the input schema for the list_grapes tool.
type ListGrapesInput struct {
	Color string `json:"color,omitempty" jsonschema:"only return grapes of this color: red, white or rosé"`
}

// GrapeSummary is a grape without its climate detail.
type GrapeSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListGrapesOutput is the output schema for the list_grapes tool.
type ListGrapesOutput struct {
	Grapes []GrapeSummary `json:"grapes"`
	Count  int            `json:"count"`
}

// GetGrapeInput is the input schema for the get_grape tool.
type GetGrapeInput struct {
	ID string `json:"id" jsonschema:"grape id, for example pinot_noir"`
}

// GetGrapeOutput is the output schema for the get_grape tool.
type GetGrapeOutput struct {
	Grape   models.Grape    `json:"grape"`
	Regions []models.Region `json:"regions"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "simulate",
		Description: "Score every wine region and grape variety against a terroir and return the best matches with a derived flavor profile",
	}, s.handleSimulate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_regions",
		Description: "List the wine regions in the catalog",
	}, s.handleListRegions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_region",
		Description: "Get a wine region with its climate and key grapes",
	}, s.handleGetRegion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_grapes",
		Description: "List the grape varieties in the catalog",
	}, s.handleListGrapes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_grape",
		Description: "Get a grape variety with its preferred climate, flavor profile and typical regions",
	}, s.handleGetGrape)
}

// handleSimulate handles the simulate tool invocation.
func (s *Server) handleSimulate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	in SimulateInput,
) (*mcp.CallToolResult, SimulateOutput, error) {
	input, sys, err := in.resolve()
	if err != nil {
		s.metrics.RecordInvalidInput(simulation.TransportMCP)
		return nil, SimulateOutput{}, err
	}

	start := time.Now()
	res := s.engine.Simulate(input)
	s.metrics.RecordSimulation(simulation.TransportMCP, input, time.Since(start), &res)

	hl := geo.Highlights(res.MatchedRegions)
	out := SimulateOutput{
		Input:                input,
		Display:              units.Format(input, sys),
		MatchedRegions:       make([]ScoredEntry, len(res.MatchedRegions)),
		MatchedGrapes:        make([]ScoredEntry, len(res.MatchedGrapes)),
		DerivedFlavorProfile: res.DerivedFlavorProfile,
		Countries:            hl.Countries,
		States:               hl.States,
	}
	for i, m := range res.MatchedRegions {
		out.MatchedRegions[i] = ScoredEntry{
			ID:      m.Entity.ID,
			Name:    m.Entity.Name,
			Score:   m.Score,
			Country: m.Entity.Country,
		}
	}
	for i, m := range res.MatchedGrapes {
		out.MatchedGrapes[i] = ScoredEntry{
			ID:    m.Entity.ID,
			Name:  m.Entity.Name,
			Score: m.Score,
			Color: string(m.Entity.Color),
		}
	}

	return nil, out, nil
}

// resolve fills omitted values from the default terroir.
func (in SimulateInput) resolve() (models.TerroirInput, units.System, error) {
	input := models.DefaultInput()
	if in.Temperature != nil {
		input.Temperature = *in.Temperature
	}
	if in.Rainfall != nil {
		input.Rainfall = *in.Rainfall
	}
	if in.Altitude != nil {
		input.Altitude = *in.Altitude
	}
	if in.SoilType != nil {
		input.SoilType = *in.SoilType
	}
	if err := input.Validate(); err != nil {
		return input, "", err
	}

	sys, err := units.ParseSystem(in.Units)
	if err != nil {
		return input, "", err
	}
	return input, sys, nil
}

// handleListRegions handles the list_regions tool invocation.
func (s *Server) handleListRegions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	in ListRegionsInput,
) (*mcp.CallToolResult, ListRegionsOutput, error) {
	regions := s.engine.Catalog().Regions()

	out := ListRegionsOutput{Regions: make([]RegionSummary, 0, len(regions))}
	for i := range regions {
		if in.Country != "" && regions[i].Country != in.Country {
			continue
		}
		out.Regions = append(out.Regions, RegionSummary{
			ID:          regions[i].ID,
			Name:        regions[i].Name,
			Country:     regions[i].Country,
			Appellation: regions[i].Appellation,
		})
	}
	out.Count = len(out.Regions)

	return nil, out, nil
}

// handleGetRegion handles the get_region tool invocation.
func (s *Server) handleGetRegion(
	_ context.Context,
	_ *mcp.CallToolRequest,
	in GetRegionInput,
) (*mcp.CallToolResult, GetRegionOutput, error) {
	cat := s.engine.Catalog()
	region, err := cat.Region(in.ID)
	if err != nil {
		return nil, GetRegionOutput{}, err
	}
	return nil, GetRegionOutput{Region: region, Grapes: cat.KeyGrapes(region)}, nil
}

// handleListGrapes handles the list_grapes tool invocation.
func (s *Server) handleListGrapes(
	_ context.Context,
	_ *mcp.CallToolRequest,
	in ListGrapesInput,
) (*mcp.CallToolResult, ListGrapesOutput, error) {
	color := models.Color(in.Color)
	if in.Color != "" && !color.Valid() {
		return nil, ListGrapesOutput{}, fmt.Errorf("unknown color %q (want red, white or rosé)", in.Color)
	}

	grapes := s.engine.Catalog().Grapes()
	out := ListGrapesOutput{Grapes: make([]GrapeSummary, 0, len(grapes))}
	for i := range grapes {
		if in.Color != "" && grapes[i].Color != color {
			continue
		}
		out.Grapes = append(out.Grapes, GrapeSummary{
			ID:    grapes[i].ID,
			Name:  grapes[i].Name,
			Color: string(grapes[i].Color),
		})
	}
	out.Count = len(out.Grapes)

	return nil, out, nil
}

// handleGetGrape handles the get_grape tool invocation.
func (s *Server) handleGetGrape(
	_ context.Context,
	_ *mcp.CallToolRequest,
	in GetGrapeInput,
) (*mcp.CallToolResult, GetGrapeOutput, error) {
	cat := s.engine.Catalog()
	grape, err := cat.Grape(in.ID)
	if err != nil {
		return nil, GetGrapeOutput{}, err
	}
	return nil, GetGrapeOutput{Grape: grape, Regions: cat.TypicalRegions(grape)}, nil
}
