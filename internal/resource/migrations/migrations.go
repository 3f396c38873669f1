// Package migrations embeds the resource-service schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
