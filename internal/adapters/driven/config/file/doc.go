// Package file persists lifta configuration on the local filesystem.
//
// ConfigStore keeps settings in a single TOML file under ~/.lifta,
// PromptStore keeps the user-editable prompt templates and keyword lists
// the query pipeline loads at startup.
package file
