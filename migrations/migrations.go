// migrations/migrations.go

// Package migrations embeds the versioned SQL schema so the binaries do not
// depend on the working directory at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
