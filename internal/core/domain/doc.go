// Package domain holds the core types of the Lifta question-answering
// pipeline: document fragments and their extraction provenance, grounded
// answers, feedback entries, and the settings every other layer reads.
//
// The package sits at the centre of the hexagonal architecture and imports
// nothing but the standard library. Every other internal package depends on
// domain; domain depends on none of them.
//
// The main types:
//
//   - Fragment: one retrievable unit of indexed document text
//   - ExtractedPage: per-page extraction output with its quality verdict
//   - Answer: a grounded query result with sources and a relevance score
//   - FeedbackEntry: a user rating on an answer, feeding the golden dataset
//   - IndexReport: the summary of an indexing run
//   - AppSettings: every tunable the application reads
package domain
