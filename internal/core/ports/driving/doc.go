// Package driving defines the interfaces the user-facing adapters call
// IN through: the CLI, the chat TUI and the MCP server all drive the
// application via these ports.
//
// Implementations live in internal/core/services.
package driving
