package main

import "embed"

// configFS holds the default engine configuration
//
//go:embed configs
var configFS embed.FS
