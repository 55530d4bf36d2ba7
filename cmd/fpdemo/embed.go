package main

import "embed"

// configFS holds the demo configs so the binary runs from any directory.
//
//go:embed configs
var configFS embed.FS
