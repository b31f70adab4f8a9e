package migrations

import "embed"

// Files exposes embedded goose SQL migrations ordered by version prefix.
//
//go:embed *.sql
var Files embed.FS
