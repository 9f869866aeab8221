// Package logging builds the structured slog.Logger shared by the settings
// application, its Fx container and config sources.
package logging
