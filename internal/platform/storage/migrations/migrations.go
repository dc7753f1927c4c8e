// Package migrations holds embedded database schema migrations.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var migrationsFS embed.FS

// Files returns embedded migration files.
func Files() fs.FS {
	return migrationsFS
}
