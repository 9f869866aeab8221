// Package yaml parses YAML settings documents for the config package.
//
// This package uses github.com/goccy/go-yaml. Documents are decoded into
// untyped values (map[string]any for mappings) so the config package can
// merge them before any typing happens. Data must hold a single document.
//
// Usage:
//
//	parser := yaml.NewParser()
//	document, err := parser.Parse(data)
//	section, err := yaml.Lookup(document, []string{"app", "database"})
//
// Lookup builds a goccy/go-yaml path (e.g. "$.app.database") from the keys
// and filters the document with it. A missing key is reported as
// ErrPathNotFound.
package yaml
