package config

import (
	"log/slog"

	filefetcher "github.com/0xalexb/yaml-settings/config/fetcher/file"
	yamlparser "github.com/0xalexb/yaml-settings/config/parser/yaml"
)

// Parser defines an interface for decoding one YAML document into an untyped value.
//
// Mappings must decode to map[string]any. Empty documents decode to nil.
// See config/parser/yaml for the goccy/go-yaml implementation.
type Parser interface {
	Parse(data []byte) (any, error)
}

// DataFetcher defines an interface for reading the raw bytes of one file.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// FetchFunc opens the file at path. It must return an error matching
// fs.ErrNotExist when nothing exists at path.
type FetchFunc func(path FilePath) (DataFetcher, error)

// Option configures a Merger, a Cache or a Source.
type Option func(*options)

type options struct {
	logger *slog.Logger
	parser Parser
	fetch  FetchFunc
	strict bool
	cache  *Cache
	merger *Merger
}

// WithLogger provides the slog.Logger.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithParser replaces the goccy/go-yaml based parser.
func WithParser(parser Parser) Option {
	return func(opts *options) {
		opts.parser = parser
	}
}

// WithFetcher replaces how files are read. The default reads the local filesystem.
func WithFetcher(fetch FetchFunc) Option {
	return func(opts *options) {
		opts.fetch = fetch
	}
}

// WithStrict makes a non-mapping document, a subpath holding a non-mapping
// value or null, or a subpath that resolves to nothing an error naming the
// file instead of an empty contribution.
func WithStrict() Option {
	return func(opts *options) {
		opts.strict = true
	}
}

// WithCache makes a Source use cache instead of the process-wide default cache.
func WithCache(cache *Cache) Option {
	return func(opts *options) {
		opts.cache = cache
	}
}

// WithMerger makes a Source use merger instead of building one from the other options.
func WithMerger(merger *Merger) Option {
	return func(opts *options) {
		opts.merger = merger
	}
}

func apply(opts []Option) options {
	option := options{}
	for _, opt := range opts {
		opt(&option)
	}

	if option.logger == nil {
		option.logger = slog.Default()
	}

	if option.parser == nil {
		option.parser = yamlparser.NewParser()
	}

	if option.fetch == nil {
		option.fetch = fetchFile
	}

	return option
}

func fetchFile(path FilePath) (DataFetcher, error) {
	fetcher, err := filefetcher.NewFetcher(string(path))()
	if err != nil {
		return nil, err //nolint:wrapcheck // the fetcher already names the path
	}

	return fetcher, nil
}
