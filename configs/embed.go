// Package configs provides the embedded default configuration for pfsearch.
//
// The template is embedded at build time using Go's //go:embed directive
// so it is available in all distributions. `pfsearch config init` writes
// it to ~/.config/pfsearch/pfsearch.yaml; the loader in internal/config
// falls back to compiled-in defaults when no file exists.
package configs

import _ "embed"

// DefaultConfigTemplate is the annotated default configuration written
// by `pfsearch config init`.
//
//go:embed pfsearch.example.yaml
var DefaultConfigTemplate string
