package config

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// SettingsConfig is the declarative configuration attached to a settings
// definition. A nil field means the option is not set at that level.
type SettingsConfig struct {
	YAMLFiles  FileSpec
	YAMLReload *bool
}

// ParseSettingsConfig reads the recognized options (yaml_files, yaml_reload)
// from an untyped configuration object. Other keys belong to the surrounding
// framework and are ignored.
func ParseSettingsConfig(raw map[string]any) (SettingsConfig, error) {
	var settingsConfig SettingsConfig

	if files, ok := raw["yaml_files"]; ok && files != nil {
		spec, err := ParseFileSpec(files)
		if err != nil {
			return SettingsConfig{}, fmt.Errorf("yaml_files: %w", err)
		}

		settingsConfig.YAMLFiles = spec
	}

	if reload, ok := raw["yaml_reload"]; ok && reload != nil {
		flag, isBool := reload.(bool)
		if !isBool {
			return SettingsConfig{}, fmt.Errorf("%w: yaml_reload must be a boolean, got %T", ErrConfiguration, reload)
		}

		settingsConfig.YAMLReload = &flag
	}

	return settingsConfig, nil
}

// overrides are set after a hierarchy is fixed and win over any declarative
// SettingsConfig, wherever in the hierarchy either is defined.
type overrides struct {
	files  FileSpec
	reload *bool
}

// Definition describes a settings type: its declarative configuration, its
// override slots and the definition it extends.
//
// To create a Definition, call [NewDefinition] or [Definition.Extend].
type Definition struct {
	id       uint64
	name     string
	parent   *Definition
	declared SettingsConfig
	override overrides
}

// DefinitionOption configures a Definition.
type DefinitionOption func(*Definition)

// NewDefinition creates a root Definition.
func NewDefinition(name string, opts ...DefinitionOption) *Definition {
	definition := &Definition{id: definitionIDs.Add(1), name: name}
	for _, opt := range opts {
		opt(definition)
	}

	return definition
}

// Extend creates a Definition that specializes d.
// Options set on the child take precedence over the same kind of option on d.
func (d *Definition) Extend(name string, opts ...DefinitionOption) *Definition {
	child := NewDefinition(name, opts...)
	child.parent = d

	return child
}

// Name returns the definition name.
func (d *Definition) Name() string {
	return d.name
}

// Parent returns the extended definition, or nil for a root definition.
func (d *Definition) Parent() *Definition {
	return d.parent
}

func (d *Definition) String() string {
	names := make([]string, 0)
	for current := d; current != nil; current = current.parent {
		names = append(names, current.name)
	}

	return strings.Join(names, " < ")
}

//nolint:gochecknoglobals // identities of definitions, used to key the cache.
var definitionIDs atomic.Uint64

// WithSettingsConfig sets the whole declarative configuration.
func WithSettingsConfig(settingsConfig SettingsConfig) DefinitionOption {
	return func(d *Definition) {
		d.declared = settingsConfig
	}
}

// WithYAMLFiles sets the declarative yaml_files option.
func WithYAMLFiles(spec FileSpec) DefinitionOption {
	return func(d *Definition) {
		d.declared.YAMLFiles = spec
	}
}

// WithYAMLReload sets the declarative yaml_reload option.
func WithYAMLReload(reload bool) DefinitionOption {
	return func(d *Definition) {
		d.declared.YAMLReload = &reload
	}
}

// WithFilesOverride sets the files override slot.
// It wins over every declarative yaml_files, including those of extending definitions.
func WithFilesOverride(spec FileSpec) DefinitionOption {
	return func(d *Definition) {
		d.override.files = spec
	}
}

// WithReloadOverride sets the reload override slot.
// It wins over every declarative yaml_reload, including those of extending definitions.
func WithReloadOverride(reload bool) DefinitionOption {
	return func(d *Definition) {
		d.override.reload = &reload
	}
}

// ResolvedConfiguration is the file mapping and reload flag actually used for
// a definition once precedence has been applied.
type ResolvedConfiguration struct {
	Files  FileConfigMapping
	Reload bool
}

// Key identifies the configuration. Equal configurations have equal keys.
func (r ResolvedConfiguration) Key() string {
	return fmt.Sprintf("reload=%t files=[%s]", r.Reload, r.Files)
}

// Resolve determines the ResolvedConfiguration of def. The first source
// found, walking from def to its root, is used, with all override slots
// checked before any declarative option:
//
//  1. files override, then declarative yaml_files;
//  2. reload override, then declarative yaml_reload, then false.
//
// It returns ErrNoFileSource when no files are named anywhere, or when the
// files option found names no file at all. No file is touched.
func Resolve(def *Definition) (ResolvedConfiguration, error) {
	if def == nil {
		return ResolvedConfiguration{}, fmt.Errorf("%w: nil definition", ErrNoFileSource)
	}

	spec := def.lookupFiles()
	if spec == nil {
		return ResolvedConfiguration{}, fmt.Errorf("%w: settings %q must name at least one yaml file", ErrNoFileSource, def.name)
	}

	files, err := Normalize(spec)
	if err != nil {
		return ResolvedConfiguration{}, fmt.Errorf("settings %q: %w", def.name, err)
	}

	if files.Len() == 0 {
		return ResolvedConfiguration{}, fmt.Errorf("%w: settings %q names an empty yaml file list", ErrNoFileSource, def.name)
	}

	return ResolvedConfiguration{
		Files:  files,
		Reload: def.lookupReload(),
	}, nil
}

func (d *Definition) lookupFiles() FileSpec {
	for current := d; current != nil; current = current.parent {
		if current.override.files != nil {
			return current.override.files
		}
	}

	for current := d; current != nil; current = current.parent {
		if current.declared.YAMLFiles != nil {
			return current.declared.YAMLFiles
		}
	}

	return nil
}

func (d *Definition) lookupReload() bool {
	for current := d; current != nil; current = current.parent {
		if current.override.reload != nil {
			return *current.override.reload
		}
	}

	for current := d; current != nil; current = current.parent {
		if current.declared.YAMLReload != nil {
			return *current.declared.YAMLReload
		}
	}

	return false
}
