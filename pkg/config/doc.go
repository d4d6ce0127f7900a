// Package config loads the weeks configuration.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults ([Default]).
//  2. A TOML file, by default $XDG_CONFIG_HOME/weeks/config.toml.
//  3. WEEKS_* environment variables, optionally seeded from a .env file by
//     the binary.
//
// The merged result is validated with struct tags; every failure is an
// INVALID_CONFIG error.
//
// # File format
//
//	[grid]
//	min_cell_size = 3.0
//	max_width = 680.0
//
//	[[grid.gaps]]
//	min_width = 768.0
//	gap = 4.0
//
//	[[grid.gaps]]
//	min_width = 0.0
//	gap = 3.0
//
//	[share]
//	base_url = "https://weeks.example.com/"
//	language = "de"
//
//	[offline]
//	dir = "/var/cache/weeks"
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
// Gap tables may be listed in any order; they are sorted widest first.
package config
