package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/terroir/pkg/catalog"
)

func TestServer_handleSoilsResource(t *testing.T) {
	s := newTestServer(t)
	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uriScheme + "soils"}}

	res, err := s.handleSoilsResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var soils []string
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &soils))
	assert.Equal(t, []string{"Limestone", "Clay", "Granite", "Volcanic", "Sandy"}, soils)
}

func TestServer_handleDanglingResource(t *testing.T) {
	s := newTestServer(t)
	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uriScheme + "catalog/dangling"}}

	res, err := s.handleDanglingResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var refs []catalog.DanglingReference
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &refs))
	assert.Contains(t, refs, catalog.DanglingReference{From: "malbec", ID: "cahors"})
}
