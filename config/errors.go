package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the single error kind reported for settings that cannot
// be sourced from YAML files. Every other sentinel in this package wraps it,
// so errors.Is(err, ErrConfiguration) holds for all of them.
var ErrConfiguration = errors.New("configuration error")

var (
	// ErrNoFileSource is returned when neither an override nor a declarative
	// option names any YAML file for a settings definition.
	ErrNoFileSource = fmt.Errorf("%w: no yaml file source", ErrConfiguration)

	// ErrInvalidFileSpec is returned when a yaml_files value has a shape that
	// cannot be normalized.
	ErrInvalidFileSpec = fmt.Errorf("%w: invalid yaml files specification", ErrConfiguration)

	// ErrRequiredFileMissing is returned when a required file does not exist.
	ErrRequiredFileMissing = fmt.Errorf("%w: required yaml file missing", ErrConfiguration)

	// ErrNotMapping is returned in strict mode when a document (or the value
	// under its subpath) is not a mapping.
	ErrNotMapping = fmt.Errorf("%w: yaml document is not a mapping", ErrConfiguration)

	// ErrSubpathNotFound is returned in strict mode when no subpath candidate
	// resolves inside a document.
	ErrSubpathNotFound = fmt.Errorf("%w: subpath not found", ErrConfiguration)
)
