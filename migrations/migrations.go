// Package migrations embeds the goose migrations shared by the SQLite and
// Postgres snapshot stores. Keep statements portable across both dialects.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
