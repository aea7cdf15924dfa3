// assets/embed.go
//
// Embedded default word lists and SQL migrations.
// The word lists are used whenever WORDS_DIR is not configured; the
// migrations are applied to the history database on start.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed english.txt german.txt
var FS embed.FS

//go:embed sql/*.sql
var migrations embed.FS

// WordList returns the raw bytes of an embedded word list (e.g. "english.txt").
func WordList(name string) ([]byte, error) {
	return FS.ReadFile(name)
}

// Migrations exposes the embedded sql/ directory rooted at its contents.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrations, "sql")
}
