package domain

import "time"

// IndexMode selects how an indexing run treats previously ingested files.
type IndexMode string

// Available index modes.
const (
	// IndexIncremental processes only files absent from the ledger.
	IndexIncremental IndexMode = "incremental"

	// IndexFull clears the vector collection and the ledger, then
	// processes every file.
	IndexFull IndexMode = "full"
)

// IsValid returns true if the index mode is recognised.
func (m IndexMode) IsValid() bool {
	switch m {
	case IndexIncremental, IndexFull:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m IndexMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m IndexMode) Description() string {
	switch m {
	case IndexIncremental:
		return "Incremental (skip already indexed files)"
	case IndexFull:
		return "Full (clear collection and reindex everything)"
	default:
		return unknownDescription
	}
}

// FileFailure records one file the indexing run could not process.
type FileFailure struct {
	// File is the base name of the failed file.
	File string

	// Reason is the error message.
	Reason string
}

// IndexReport summarises a completed indexing run.
type IndexReport struct {
	// Mode is the mode the run executed in.
	Mode IndexMode

	// FilesProcessed is the number of files successfully ingested.
	FilesProcessed int

	// FilesSkipped is the number of files skipped via the ledger.
	FilesSkipped int

	// Failures lists files that could not be processed.
	Failures []FileFailure

	// Fragments is the total number of fragments added to the store.
	Fragments int

	// Duration is the wall-clock time of the run.
	Duration time.Duration

	// Stopped indicates the run ended early via a stop request.
	Stopped bool
}

// FragmentsPerSecond returns the ingestion throughput.
func (r IndexReport) FragmentsPerSecond() float64 {
	secs := r.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Fragments) / secs
}

// IndexStatus represents the current state of the index manager.
type IndexStatus struct {
	// Running indicates if an indexing run is in progress.
	Running bool

	// CurrentFile is the file being processed, when running.
	CurrentFile string

	// FilesProcessed is the count of files completed so far.
	FilesProcessed int

	// Fragments is the count of fragments added so far.
	Fragments int
}

// IndexStats describes the persisted state of the index.
type IndexStats struct {
	// IndexedFiles lists the ledger entries.
	IndexedFiles []string

	// Fragments is the number of points in the vector collection.
	Fragments int

	// Dimension is the vector dimensionality of the collection.
	Dimension int

	// EmbeddingModel is the model the vectors were produced with.
	EmbeddingModel string

	// CacheEntries is the number of entries in the embedding cache.
	CacheEntries int
}
