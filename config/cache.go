package config

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes merged mappings for configurations that do not reload.
//
// An entry is stored only after a successful load and is never refreshed:
// later calls with the same key return it without touching the filesystem,
// even if the files have since changed or disappeared.
// Failed loads are not stored, so the next call tries again.
//
// To create a new Cache, call [NewCache]. It is safe for concurrent use.
type Cache struct {
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]map[string]any
	flights singleflight.Group
}

// NewCache creates an empty Cache with the given Option(s).
// Only WithLogger applies to a Cache.
func NewCache(opts ...Option) *Cache {
	option := apply(opts)

	return &Cache{
		logger:  option.logger,
		entries: make(map[string]map[string]any),
	}
}

//nolint:gochecknoglobals // process-wide cache shared by every Source without WithCache.
var defaultCache = &Cache{entries: make(map[string]map[string]any)}

// DefaultCache returns the process-wide Cache.
func DefaultCache() *Cache {
	return defaultCache
}

// Load returns the mapping for key. With reload set, produce runs on every
// call and nothing is stored. Otherwise produce runs at most once per key
// until it succeeds; concurrent first calls share one run.
//
// The returned mapping is a copy the caller may modify.
func (c *Cache) Load(key string, reload bool, produce func() (map[string]any, error)) (map[string]any, error) {
	if reload {
		c.log().Debug("yaml settings reloaded", slog.String("key", key))

		return produce()
	}

	if values, ok := c.lookup(key); ok {
		c.log().Debug("yaml settings cache hit", slog.String("key", key))

		return cloneMap(values), nil
	}

	result, err, _ := c.flights.Do(key, func() (any, error) {
		// A flight that finished just before this one started has stored its result.
		if values, ok := c.lookup(key); ok {
			return values, nil
		}

		values, err := produce()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = values
		c.mu.Unlock()

		c.log().Debug("yaml settings cached", slog.String("key", key))

		return values, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // produce errors are returned as they are
	}

	values, _ := result.(map[string]any)

	return cloneMap(values), nil
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Reset drops every entry. It exists for tests; settings code never
// invalidates the cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]map[string]any)
}

func (c *Cache) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}

	return c.logger
}

func (c *Cache) lookup(key string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	values, ok := c.entries[key]

	return values, ok
}

func cloneMap(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}

	cloned := make(map[string]any, len(values))
	for key, value := range values {
		cloned[key] = cloneValue(value)
	}

	return cloned
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		cloned := make([]any, len(typed))
		for i, item := range typed {
			cloned[i] = cloneValue(item)
		}

		return cloned
	default:
		return value
	}
}
