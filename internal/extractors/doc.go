// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to pull per-page
// text out of a specific file type.
//
// Extractors are registered with the Registry at startup and selected by
// file extension.
package extractors
