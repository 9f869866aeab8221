package config

import (
	"fmt"
	"log/slog"
)

// Source produces the merged YAML mapping of one settings definition.
// It is the overlay handed to the validation layer, which applies
// environment variables and explicit arguments on top of it.
//
// To create a new Source, call [NewSource].
type Source struct {
	definition *Definition
	resolved   ResolvedConfiguration
	key        string

	cache  *Cache
	merger *Merger
	logger *slog.Logger
}

// NewSource resolves def and returns a Source for it.
//
// Resolution happens here, before any file is read, so a definition without
// any YAML file fails with ErrNoFileSource at this point.
// Mappings are cached per definition: two definitions never share an entry,
// even when they resolve to the same files. Sources of one definition share
// an entry when their mergers agree on strict mode. A fetcher or parser set
// with WithFetcher or WithParser is not part of the entry, so give such a
// Source its own cache with WithCache.
func NewSource(def *Definition, opts ...Option) (*Source, error) {
	resolved, err := Resolve(def)
	if err != nil {
		return nil, err
	}

	option := apply(opts)

	merger := option.merger
	if merger == nil {
		merger = NewMerger(opts...)
	}

	cache := option.cache
	if cache == nil {
		cache = DefaultCache()
	}

	return &Source{
		definition: def,
		resolved:   resolved,
		key:        fmt.Sprintf("%d:%s strict=%t %s", def.id, def.name, merger.strict, resolved.Key()),
		cache:      cache,
		merger:     merger,
		logger:     option.logger.With(slog.String("settings", def.name)),
	}, nil
}

// Files returns the resolved file mapping.
func (s *Source) Files() FileConfigMapping {
	return s.resolved.Files
}

// Reload reports whether files are read again on every Load.
func (s *Source) Reload() bool {
	return s.resolved.Reload
}

// Definition returns the definition the Source was resolved from.
func (s *Source) Definition() *Definition {
	return s.definition
}

// Load returns the merged mapping, from the cache unless Reload is set.
func (s *Source) Load() (map[string]any, error) {
	values, err := s.cache.Load(s.key, s.resolved.Reload, func() (map[string]any, error) {
		s.logger.Debug("loading yaml settings", slog.Int("files", s.resolved.Files.Len()))

		return s.merger.Merge(s.resolved.Files)
	})
	if err != nil {
		return nil, fmt.Errorf("load settings %q: %w", s.definition.name, err)
	}

	return values, nil
}

// Unmarshal loads the merged mapping and decodes it into target.
// See [Decode].
func (s *Source) Unmarshal(target any) error {
	values, err := s.Load()
	if err != nil {
		return err
	}

	return Decode(values, target, WithLogger(s.logger))
}
