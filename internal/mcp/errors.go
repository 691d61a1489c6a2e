// Package mcp exposes the terroir engine to AI assistants over the Model
// Context Protocol.
package mcp

import "errors"

// ErrMissingEngine is returned when no simulation engine is provided.
var ErrMissingEngine = errors.New("mcp: simulation engine is required")
