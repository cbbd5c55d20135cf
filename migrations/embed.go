// Package migrations embeds the SQL schema for the Postgres session store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
