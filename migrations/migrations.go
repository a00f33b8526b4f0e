// Package migrations embeds the SQL schema migrations for the result store.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file, named the way golang-migrate expects.
//
//go:embed *.sql
var FS embed.FS
