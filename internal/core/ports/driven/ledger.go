package driven

// IndexLedger is the persisted record of files already ingested into the
// vector collection. It is what makes incremental indexing possible.
type IndexLedger interface {
	// Contains reports whether the file name is already recorded.
	Contains(file string) bool

	// Add records a file and persists the ledger immediately, so a crash
	// mid-run loses at most the file being processed.
	Add(file string) error

	// Files returns every recorded file name, sorted.
	Files() []string

	// Clear empties the ledger and persists the empty state.
	Clear() error
}
