// Package migrations embeds the SQL schema applied by sql-migrate.
package migrations

import (
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed *.sql
var files embed.FS

// Source returns the embedded migration source
func Source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       ".",
	}
}
