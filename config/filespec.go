package config

import (
	"fmt"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// FilePath identifies a YAML file on disk.
// Values built with NewFilePath are cleaned, so two spellings of the same
// location compare equal and can be used as map keys.
type FilePath string

// NewFilePath returns the canonical FilePath for path.
func NewFilePath(path string) FilePath {
	return FilePath(filepath.Clean(path))
}

func (p FilePath) String() string {
	return string(p)
}

// KeyPath is an ordered list of nested mapping keys.
type KeyPath []string

func (k KeyPath) String() string {
	return strings.Join(k, ".")
}

// Subpath holds the candidate key paths tried, in order, when extracting a
// sub-mapping from a parsed document. The first candidate that resolves wins.
type Subpath []KeyPath

// NewSubpath returns a Subpath with a single candidate made of nested keys.
// NewSubpath("a", "b") selects document["a"]["b"].
func NewSubpath(keys ...string) Subpath {
	if len(keys) == 0 {
		return nil
	}

	return Subpath{slices.Clone(KeyPath(keys))}
}

// SubpathCandidates returns a Subpath with one candidate per dotted path.
// SubpathCandidates("app.db", "db") tries document["app"]["db"] and then document["db"].
func SubpathCandidates(paths ...string) Subpath {
	subpath := make(Subpath, 0, len(paths))
	for _, path := range paths {
		subpath = append(subpath, KeyPath(strings.Split(path, ".")))
	}

	return subpath
}

func (s Subpath) String() string {
	candidates := make([]string, 0, len(s))
	for _, candidate := range s {
		candidates = append(candidates, candidate.String())
	}

	return strings.Join(candidates, "|")
}

// FileOptions controls how a single file is loaded.
type FileOptions struct {
	// Required makes a missing file a hard error. Optional files that do not
	// exist contribute nothing.
	Required bool
	// Subpath, when set, selects a nested mapping instead of the whole document.
	Subpath Subpath
}

// DefaultFileOptions returns the options applied to files listed without any.
func DefaultFileOptions() FileOptions {
	return FileOptions{Required: true}
}

// PartialOptions is a FileOptions where unset fields take the defaults.
type PartialOptions struct {
	Required *bool
	Subpath  Subpath
}

// Optional is shorthand for PartialOptions{Required: &false}.
func Optional() PartialOptions {
	required := false

	return PartialOptions{Required: &required}
}

func (p PartialOptions) resolve() FileOptions {
	options := DefaultFileOptions()
	if p.Required != nil {
		options.Required = *p.Required
	}

	options.Subpath = slices.Clone(p.Subpath)

	return options
}

// FileEntry pairs a path with its partial options inside a FileMap.
type FileEntry struct {
	Path    string
	Options PartialOptions
}

// FileConfigMapping is the canonical, ordered mapping from file path to its
// options. Insertion order is the merge order.
//
// The zero value is an empty mapping ready to use.
type FileConfigMapping struct {
	paths   []FilePath
	options map[FilePath]FileOptions
}

// Set adds path with the given options. Setting a path that is already
// present replaces its options and keeps its position.
func (m *FileConfigMapping) Set(path FilePath, options FileOptions) {
	if m.options == nil {
		m.options = make(map[FilePath]FileOptions)
	}

	if _, ok := m.options[path]; !ok {
		m.paths = append(m.paths, path)
	}

	m.options[path] = options
}

// Get returns the options of path.
func (m FileConfigMapping) Get(path FilePath) (FileOptions, bool) {
	options, ok := m.options[path]

	return options, ok
}

// Len returns the number of files.
func (m FileConfigMapping) Len() int {
	return len(m.paths)
}

// Paths returns the file paths in merge order.
func (m FileConfigMapping) Paths() []FilePath {
	return slices.Clone(m.paths)
}

// All iterates over the files in merge order.
func (m FileConfigMapping) All() iter.Seq2[FilePath, FileOptions] {
	return func(yield func(FilePath, FileOptions) bool) {
		for _, path := range m.paths {
			if !yield(path, m.options[path]) {
				return
			}
		}
	}
}

// Equal reports whether both mappings list the same files, in the same
// order, with the same options.
func (m FileConfigMapping) Equal(other FileConfigMapping) bool {
	return m.String() == other.String()
}

func (m FileConfigMapping) String() string {
	builder := &strings.Builder{}
	for i, path := range m.paths {
		if i > 0 {
			builder.WriteString(", ")
		}

		options := m.options[path]
		fmt.Fprintf(builder, "%q{required=%t", string(path), options.Required)

		for _, candidate := range options.Subpath {
			fmt.Fprintf(builder, " subpath=%q", []string(candidate))
		}

		builder.WriteString("}")
	}

	return builder.String()
}

func (m FileConfigMapping) fileConfig() (FileConfigMapping, error) {
	var mapping FileConfigMapping
	for path, options := range m.All() {
		options.Subpath = slices.Clone(options.Subpath)
		mapping.Set(NewFilePath(string(path)), options)
	}

	return mapping, nil
}

// FileSpec is one of the accepted shapes describing which YAML files to
// load: File, FileSet, FileMap or an already canonical FileConfigMapping.
type FileSpec interface {
	fileConfig() (FileConfigMapping, error)
}

type singleFile string

// File names a single required file.
func File(path string) FileSpec {
	return singleFile(path)
}

func (f singleFile) fileConfig() (FileConfigMapping, error) {
	return fileSet{string(f)}.fileConfig()
}

type fileSet []string

// FileSet names a collection of required files. Duplicates collapse to one
// entry, kept at the position where the path first appears.
func FileSet(paths ...string) FileSpec {
	return fileSet(slices.Clone(paths))
}

func (s fileSet) fileConfig() (FileConfigMapping, error) {
	var mapping FileConfigMapping
	for _, path := range s {
		if path == "" {
			return FileConfigMapping{}, fmt.Errorf("%w: empty file path", ErrInvalidFileSpec)
		}

		filePath := NewFilePath(path)
		if _, ok := mapping.Get(filePath); ok {
			continue
		}

		mapping.Set(filePath, DefaultFileOptions())
	}

	return mapping, nil
}

type fileMap []FileEntry

// FileMap names files with per-file options. Unset options take the defaults
// (required, no subpath). A path listed twice keeps its first position and
// the options of its last entry.
func FileMap(entries ...FileEntry) FileSpec {
	return fileMap(slices.Clone(entries))
}

func (m fileMap) fileConfig() (FileConfigMapping, error) {
	var mapping FileConfigMapping
	for _, entry := range m {
		if entry.Path == "" {
			return FileConfigMapping{}, fmt.Errorf("%w: empty file path", ErrInvalidFileSpec)
		}

		mapping.Set(NewFilePath(entry.Path), entry.Options.resolve())
	}

	return mapping, nil
}

// Normalize converts spec into its canonical FileConfigMapping.
// Normalizing a FileConfigMapping returns an equivalent mapping.
func Normalize(spec FileSpec) (FileConfigMapping, error) {
	if spec == nil {
		return FileConfigMapping{}, fmt.Errorf("%w: nil specification", ErrInvalidFileSpec)
	}

	return spec.fileConfig()
}

// ParseFileSpec converts an untyped yaml_files value, as found in decoded
// configuration, into a FileSpec.
//
// Accepted shapes are a path string, a list of path strings, and a mapping
// from path to options (nil, or a mapping with "required" and "subpath").
// yaml.MapSlice keeps document order; plain Go maps are ordered by path.
func ParseFileSpec(value any) (FileSpec, error) {
	switch typed := value.(type) {
	case FileSpec:
		return typed, nil
	case string:
		return File(typed), nil
	case FilePath:
		return File(string(typed)), nil
	case []string:
		return FileSet(typed...), nil
	case []FilePath:
		paths := make([]string, 0, len(typed))
		for _, path := range typed {
			paths = append(paths, string(path))
		}

		return FileSet(paths...), nil
	case []any:
		paths := make([]string, 0, len(typed))
		for _, item := range typed {
			path, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: file list item of type %T", ErrInvalidFileSpec, item)
			}

			paths = append(paths, path)
		}

		return FileSet(paths...), nil
	case map[string]FileOptions:
		var mapping FileConfigMapping
		for _, path := range sortedKeys(typed) {
			mapping.Set(NewFilePath(path), typed[path])
		}

		return mapping, nil
	case map[string]PartialOptions:
		entries := make([]FileEntry, 0, len(typed))
		for _, path := range sortedKeys(typed) {
			entries = append(entries, FileEntry{Path: path, Options: typed[path]})
		}

		return FileMap(entries...), nil
	case map[string]any:
		entries := make([]FileEntry, 0, len(typed))
		for _, path := range sortedKeys(typed) {
			options, err := parsePartialOptions(typed[path])
			if err != nil {
				return nil, fmt.Errorf("file %q: %w", path, err)
			}

			entries = append(entries, FileEntry{Path: path, Options: options})
		}

		return FileMap(entries...), nil
	case yaml.MapSlice:
		entries := make([]FileEntry, 0, len(typed))
		for _, item := range typed {
			path, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: file key of type %T", ErrInvalidFileSpec, item.Key)
			}

			options, err := parsePartialOptions(item.Value)
			if err != nil {
				return nil, fmt.Errorf("file %q: %w", path, err)
			}

			entries = append(entries, FileEntry{Path: path, Options: options})
		}

		return FileMap(entries...), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidFileSpec, value)
	}
}

func parsePartialOptions(value any) (PartialOptions, error) {
	switch typed := value.(type) {
	case nil:
		return PartialOptions{}, nil
	case PartialOptions:
		return typed, nil
	case FileOptions:
		required := typed.Required

		return PartialOptions{Required: &required, Subpath: typed.Subpath}, nil
	case yaml.MapSlice:
		values := make(map[string]any, len(typed))
		for _, item := range typed {
			key, ok := item.Key.(string)
			if !ok {
				return PartialOptions{}, fmt.Errorf("%w: option key of type %T", ErrInvalidFileSpec, item.Key)
			}

			values[key] = item.Value
		}

		return parsePartialOptions(values)
	case map[string]any:
		var options PartialOptions
		for key, raw := range typed {
			switch key {
			case "required":
				if raw == nil {
					continue
				}

				required, ok := raw.(bool)
				if !ok {
					return PartialOptions{}, fmt.Errorf("%w: required must be a boolean, got %T", ErrInvalidFileSpec, raw)
				}

				options.Required = &required
			case "subpath":
				subpath, err := parseSubpath(raw)
				if err != nil {
					return PartialOptions{}, err
				}

				options.Subpath = subpath
			default:
				return PartialOptions{}, fmt.Errorf("%w: unknown file option %q", ErrInvalidFileSpec, key)
			}
		}

		return options, nil
	default:
		return PartialOptions{}, fmt.Errorf("%w: file options of type %T", ErrInvalidFileSpec, value)
	}
}

// parseSubpath accepts a dotted string (one candidate), a list of strings
// (one candidate of nested keys) or a list mixing dotted strings and key
// lists (several candidates).
func parseSubpath(value any) (Subpath, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case Subpath:
		return typed, nil
	case string:
		return SubpathCandidates(typed), nil
	case []string:
		return NewSubpath(typed...), nil
	case []any:
		if keys, ok := stringSlice(typed); ok {
			return NewSubpath(keys...), nil
		}

		subpath := make(Subpath, 0, len(typed))
		for _, item := range typed {
			switch candidate := item.(type) {
			case string:
				subpath = append(subpath, KeyPath(strings.Split(candidate, ".")))
			case []any:
				keys, ok := stringSlice(candidate)
				if !ok {
					return nil, fmt.Errorf("%w: subpath keys must be strings", ErrInvalidFileSpec)
				}

				subpath = append(subpath, KeyPath(keys))
			default:
				return nil, fmt.Errorf("%w: subpath candidate of type %T", ErrInvalidFileSpec, item)
			}
		}

		return subpath, nil
	default:
		return nil, fmt.Errorf("%w: subpath of type %T", ErrInvalidFileSpec, value)
	}
}

func stringSlice(values []any) ([]string, bool) {
	keys := make([]string, 0, len(values))
	for _, value := range values {
		key, ok := value.(string)
		if !ok {
			return nil, false
		}

		keys = append(keys, key)
	}

	return keys, true
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}
