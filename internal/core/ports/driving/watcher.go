package driving

import "context"

// WatchService keeps the index in sync with the documents folder while
// active. File changes debounce into incremental index runs.
type WatchService interface {
	// Watch blocks until the context is cancelled, triggering incremental
	// runs as documents change.
	Watch(ctx context.Context) error
}
