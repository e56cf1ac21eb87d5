package chat

import "errors"

// ErrNoQueryOrchestrator is returned when the view has no query orchestrator.
var ErrNoQueryOrchestrator = errors.New("chat: query orchestrator not configured")
