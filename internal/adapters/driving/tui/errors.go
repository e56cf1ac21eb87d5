package tui

import "errors"

// ErrMissingQueryOrchestrator means Ports lacks the one dependency the
// chat view cannot run without.
var ErrMissingQueryOrchestrator = errors.New("tui: query orchestrator is required")

// ErrInvalidPorts wraps everything Ports.Validate can reject.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
