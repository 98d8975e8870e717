// Package migrations embeds the database schema and the rule catalog seed.
package migrations

import "embed"

// FS holds the per-dialect schema files and rules.json.
//
//go:embed postgres/*.sql sqlite/*.sql rules.json
var FS embed.FS
