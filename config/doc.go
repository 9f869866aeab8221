// Package config sources settings values from one or more YAML files.
//
// The package resolves which files a settings definition reads, reads and
// merges them into one untyped mapping, and caches that mapping according to
// a reload flag. Typing the mapping is left to the caller ([Decode] offers a
// mapstructure based default).
//
// # Definitions
//
// A [Definition] stands for a settings type. It carries a declarative
// [SettingsConfig] (yaml_files, yaml_reload) and two override slots.
// Definitions extend each other; lookups walk from the most specific
// definition to the root, and any override beats any declarative option:
//
//	base := config.NewDefinition("base",
//	    config.WithYAMLFiles(config.FileSet("base.yaml", "local.yaml")),
//	)
//	service := base.Extend("service", config.WithYAMLReload(true))
//
// # Files
//
// [File], [FileSet] and [FileMap] describe the files; [Normalize] turns any of
// them into the ordered [FileConfigMapping]. Files are merged in order, later
// files replacing earlier top-level keys. A missing required file is an
// error naming the path; a missing optional file contributes nothing.
//
// # Reload
//
// With reload off, the first successful load of a [Source] is kept for the
// lifetime of the process. With reload on, every [Source.Load] reads the
// files again.
package config
