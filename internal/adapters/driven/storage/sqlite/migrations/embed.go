// Package migrations embeds the SQL migrations for the feedback store.
package migrations

import "embed"

// FS holds the versioned migration pairs (.up.sql / .down.sql) embedded
// at compile time.
//
//go:embed *.sql
var FS embed.FS
