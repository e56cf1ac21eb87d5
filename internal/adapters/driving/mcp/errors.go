// Package mcp provides an MCP (Model Context Protocol) server adapter for lifta.
// It lets AI assistants query the indexed documentation and inspect the index.
package mcp

import "errors"

// ErrMissingQueryOrchestrator means no query orchestrator was wired in.
// Every tool the server exposes goes through it.
var ErrMissingQueryOrchestrator = errors.New("mcp: query orchestrator is required")

// ErrInvalidPorts is the umbrella for rejected server dependencies.
var ErrInvalidPorts = errors.New("mcp: invalid ports configuration")
