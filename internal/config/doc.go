// Package config manages the CLI's global settings file (~/.tina/config.yaml)
// through Viper, layering TINA_* environment variables over persisted values.
// The only setting consulted today is telemetry.disabled.
package config
