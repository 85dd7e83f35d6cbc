package migrations

import "embed"

//go:embed migrations
var DumpIndex embed.FS
