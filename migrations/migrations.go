// Package migrations embeds the SQL schema migrations so the server and
// the migrate CLI ship with their schema baked in.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
