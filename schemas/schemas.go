// Package schemas embeds the JSON Schemas used to validate configuration
// files before they are loaded.
package schemas

import _ "embed"

// ConfigSchemaJSON is the JSON Schema for .arena.yaml files.
//
//go:embed arena.schema.json
var ConfigSchemaJSON string
