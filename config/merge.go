package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"

	yamlparser "github.com/0xalexb/yaml-settings/config/parser/yaml"
)

// Merger reads the files of a FileConfigMapping and combines them into one
// untyped mapping.
//
// To create a new Merger, call [NewMerger].
type Merger struct {
	logger *slog.Logger
	parser Parser
	fetch  FetchFunc
	strict bool
}

// NewMerger creates a Merger with the given Option(s).
func NewMerger(opts ...Option) *Merger {
	option := apply(opts)

	return &Merger{
		logger: option.logger,
		parser: option.parser,
		fetch:  option.fetch,
		strict: option.strict,
	}
}

// Merge reads every file in order and merges their contributions.
// A top-level key from a later file replaces the same key from an earlier
// one as a whole; nested mappings are not merged.
//
// A missing required file aborts the merge with ErrRequiredFileMissing.
// Missing optional files, empty documents, non-mapping documents and
// unresolved subpaths contribute nothing unless the Merger is strict.
func (m *Merger) Merge(files FileConfigMapping) (map[string]any, error) {
	merged := make(map[string]any)

	for path, fileOptions := range files.All() {
		contribution, err := m.load(path, fileOptions)
		if err != nil {
			return nil, err
		}

		maps.Copy(merged, contribution)
	}

	m.logger.Debug("yaml files merged", slog.Int("files", files.Len()), slog.Int("keys", len(merged)))

	return merged, nil
}

func (m *Merger) load(path FilePath, fileOptions FileOptions) (map[string]any, error) {
	fetcher, err := m.fetch(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read yaml file %s: %w", path, err)
		}

		if fileOptions.Required {
			return nil, fmt.Errorf("%w: %s: %w", ErrRequiredFileMissing, path, err)
		}

		m.logger.Warn("optional yaml file does not exist", slog.String("file", path.String()))

		return nil, nil
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("read yaml file %s: %w", path, err)
	}

	document, err := m.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse yaml file %s: %w", path, err)
	}

	resolved := false

	if len(fileOptions.Subpath) > 0 {
		value, found, err := m.extract(document, fileOptions.Subpath)
		if err != nil {
			return nil, fmt.Errorf("subpath %s in %s: %w", fileOptions.Subpath, path, err)
		}

		if !found {
			if m.strict {
				return nil, fmt.Errorf("%w: %s in %s", ErrSubpathNotFound, fileOptions.Subpath, path)
			}

			m.logger.Debug("yaml subpath not found",
				slog.String("file", path.String()),
				slog.String("subpath", fileOptions.Subpath.String()),
			)

			return nil, nil
		}

		document = value
		resolved = true
	}

	mapping, ok := document.(map[string]any)
	if !ok {
		// An empty document is tolerated even in strict mode, a resolved subpath is not.
		if m.strict && (document != nil || resolved) {
			return nil, fmt.Errorf("%w: %s holds %T", ErrNotMapping, path, document)
		}

		return nil, nil
	}

	return mapping, nil
}

// extract returns the value of the first candidate that resolves.
func (m *Merger) extract(document any, subpath Subpath) (any, bool, error) {
	for _, candidate := range subpath {
		value, err := yamlparser.Lookup(document, candidate)
		if errors.Is(err, yamlparser.ErrPathNotFound) {
			continue
		}

		if err != nil {
			return nil, false, err
		}

		m.logger.Debug("yaml subpath resolved", slog.String("path", yamlparser.PathString(candidate)))

		return value, true, nil
	}

	return nil, false, nil
}
