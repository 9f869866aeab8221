package config

import (
	"fmt"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
)

// Validator defines an interface for validating settings after decoding.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values after decoding.
type Defaulter interface {
	SetDefaults() (changed bool)
}

//nolint:gochecknoglobals // composed once, read-only.
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	mapstructure.TextUnmarshallerHookFunc(),
)

// Decode decodes a merged mapping into the struct pointed to by target,
// matching keys against `yaml` struct tags. Scalars are converted weakly
// ("8080" fills an int). Then, if target implements Defaulter and Validator,
// defaults are applied and the result is validated.
//
// Only WithLogger is used from opts.
func Decode(values map[string]any, target any, opts ...Option) error {
	logger := apply(opts).logger

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook,
		TagName:          "yaml",
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	err = decoder.Decode(values)
	if err != nil {
		return fmt.Errorf("decoding error: %w", err)
	}

	targetDefaulter, isDefaulter := target.(Defaulter)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			logger.Debug("settings defaults applied", slog.String("type", fmt.Sprintf("%T", target)))
		}
	}

	targetValidatable, isValidatable := target.(Validator)
	if isValidatable {
		err := targetValidatable.Validate()
		if err != nil {
			return fmt.Errorf("validating error: %w", err)
		}
	}

	return nil
}
