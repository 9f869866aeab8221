package yamlsettings

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/yaml-settings/config"

	"go.uber.org/fx"
)

// ErrEmptyName is returned when the settings module name is empty.
var ErrEmptyName = errors.New("settings name must not be empty")

// ErrNilDefinition is returned when no settings definition is given.
var ErrNilDefinition = errors.New("settings definition must not be nil")

// NewModule creates an Fx module for the settings described by def.
// The name is used as both the module name and the DI named tag: the module
// provides a *config.Source and a decoded *T, both tagged `name:"<name>"`.
// A *slog.Logger in the container, if any, is handed to the Source.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule[T any](name string, def *config.Definition, opts ...config.Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	if def == nil {
		return fx.Error(fmt.Errorf("settings %q: %w", name, ErrNilDefinition))
	}

	tag := fmt.Sprintf(`name:"%s"`, name)

	return fx.Module(name,
		fx.Provide(
			fx.Annotate(
				func(logger *slog.Logger) (*config.Source, error) {
					sourceOpts := opts
					if logger != nil {
						sourceOpts = append([]config.Option{config.WithLogger(logger)}, opts...)
					}

					return config.NewSource(def, sourceOpts...)
				},
				fx.ParamTags(`optional:"true"`),
				fx.ResultTags(tag),
			),
		),
		fx.Provide(
			fx.Annotate(
				func(source *config.Source) (*T, error) {
					return decode[T](source)
				},
				fx.ParamTags(tag),
				fx.ResultTags(tag),
			),
		),
	)
}

// Load resolves def, merges its YAML files and decodes them into a new T.
func Load[T any](def *config.Definition, opts ...config.Option) (*T, error) {
	if def == nil {
		return nil, ErrNilDefinition
	}

	source, err := config.NewSource(def, opts...)
	if err != nil {
		return nil, err //nolint:wrapcheck // resolution errors already name the settings
	}

	return decode[T](source)
}

func decode[T any](source *config.Source) (*T, error) {
	target := new(T)

	err := source.Unmarshal(target)
	if err != nil {
		return nil, fmt.Errorf("settings %q: %w", source.Definition().Name(), err)
	}

	return target, nil
}
