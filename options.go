package yamlsettings

import (
	"github.com/0xalexb/yaml-settings/config"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithSettings adds a named settings module to the application.
// The decoded *T and its *config.Source are provided under the DI named tag.
// Call multiple times with different names to load several settings types.
func WithSettings[T any](name string, def *config.Definition, opts ...config.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, NewModule[T](name, def, opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log output format: "json" (default) or "text".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}
