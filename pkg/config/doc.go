// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Parsing is delegated to github.com/caarlos0/env; any type that
// implements encoding.TextUnmarshaler can be used as a field type,
// which is how size limits in "8M" syntax are read directly from the
// environment.
package config
