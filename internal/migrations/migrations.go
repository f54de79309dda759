// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect. The migration schema is authoritative for deployments; the
// repositories' CreateTable operations create the identical schema for the
// table-at-a-time CLI workflow.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
