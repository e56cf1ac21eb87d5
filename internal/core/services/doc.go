// Package services implements the driving port interfaces.
//
// The services here orchestrate the document pipeline end to end: the
// IndexManager runs extraction, chunking and embedding; the
// QueryOrchestrator answers questions over the indexed fragments; the
// WatchService keeps the index current; the FeedbackService grows the
// golden dataset from user verdicts.
//
// Services depend only on the domain package and the driven ports.
// Everything concrete (Ollama, Qdrant, the filesystem) is injected.
package services
