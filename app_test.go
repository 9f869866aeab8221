package yamlsettings_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	yamlsettings "github.com/0xalexb/yaml-settings"
	"github.com/0xalexb/yaml-settings/config"
	"github.com/0xalexb/yaml-settings/logging"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type serviceSettings struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNewApp_CreatesAppWithDefaultLogLevel(t *testing.T) {
	t.Parallel()

	app := yamlsettings.NewApp()
	require.NotNil(t, app)
	require.NoError(t, app.Err())
}

func TestNewApp_LoggerIsAvailableInFxContainer(t *testing.T) {
	t.Parallel()

	var capturedLogger *slog.Logger

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger) {
			capturedLogger = logger
		}),
	)

	app := yamlsettings.NewApp(
		yamlsettings.WithLogLevel("debug"),
		yamlsettings.WithModules(module),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.NotNil(t, capturedLogger)
}

func TestNewApp_LoggerConfigIsSupplied(t *testing.T) {
	t.Parallel()

	var capturedConfig logging.LoggerConfig

	module := fx.Module("test",
		fx.Invoke(func(config logging.LoggerConfig) {
			capturedConfig = config
		}),
	)

	app := yamlsettings.NewApp(
		yamlsettings.WithLogLevel("warn"),
		yamlsettings.WithLogFormat("text"),
		yamlsettings.WithModules(module),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.Equal(t, "warn", capturedConfig.Level)
	require.Equal(t, "text", capturedConfig.Format)
}

func TestNewApp_WithSettings(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "name: api\nport: 9000\n")
	def := config.NewDefinition("service", config.WithYAMLFiles(config.File(path)))

	var captured *serviceSettings

	app := yamlsettings.NewApp(
		yamlsettings.WithLogLevel("error"),
		yamlsettings.WithSettings[serviceSettings]("service", def, config.WithCache(config.NewCache())),
		yamlsettings.WithModules(fx.Invoke(
			fx.Annotate(
				func(settings *serviceSettings) {
					captured = settings
				},
				fx.ParamTags(`name:"service"`),
			),
		)),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })

	require.NotNil(t, captured)
	require.Equal(t, "api", captured.Name)
	require.Equal(t, 9000, captured.Port)
}

func TestNewApp_WithSettings_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	def := config.NewDefinition("service", config.WithYAMLFiles(config.File(missing)))

	app := yamlsettings.NewApp(
		yamlsettings.WithLogLevel("error"),
		yamlsettings.WithSettings[serviceSettings]("service", def, config.WithCache(config.NewCache())),
		yamlsettings.WithModules(fx.Invoke(
			fx.Annotate(func(*serviceSettings) {}, fx.ParamTags(`name:"service"`)),
		)),
	)

	require.Error(t, app.Err())
	require.Contains(t, app.Err().Error(), "required yaml file missing")

	err := app.Start()
	require.Error(t, err)
	require.Contains(t, err.Error(), missing)
}

func TestApp_Stop(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := yamlsettings.NewApp(yamlsettings.WithModules(module))

	err := app.Start()
	require.NoError(t, err)

	err = app.Stop()
	require.NoError(t, err)
	require.True(t, stopCalled, "OnStop hook should be called")
}

func TestApp_NilApp(t *testing.T) {
	t.Parallel()

	var app *yamlsettings.App

	require.Error(t, app.Start())
	require.Error(t, app.Stop())
	require.Error(t, app.Err())
}
