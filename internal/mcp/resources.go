package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/HerbHall/terroir/pkg/models"
)

const uriScheme = "terroir://"

// registerResources registers the static catalog resources.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "soils",
		Name:        "soils",
		Description: "Suggested soil labels for the simulate tool",
		MIMEType:    "application/json",
	}, s.handleSoilsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog/dangling",
		Name:        "dangling-references",
		Description: "Region and grape relationship ids that name nothing in the catalog",
		MIMEType:    "application/json",
	}, s.handleDanglingResource)
}

// handleSoilsResource returns the suggested soil labels.
func (s *Server) handleSoilsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, models.SoilTypes())
}

// handleDanglingResource returns unresolved catalog relationships.
func (s *Server) handleDanglingResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.engine.Catalog().DanglingReferences())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
