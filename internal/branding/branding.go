// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	DotDir       string `yaml:"dot_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	TelemetryURL string `yaml:"telemetry_url"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "tina",
			DisplayName:  "Tina",
			Description:  "Schema-driven scaffolding for a headless CMS",
			HomeDir:      ".tina",
			DotDir:       ".tina",
			EnvPrefix:    "TINA",
			GoModule:     "github.com/tinalabs/tina",
			TelemetryURL: "https://telemetry.tinalabs.dev/events",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "tina").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Tina").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".tina").
func HomeDir() string { load(); return defaults.HomeDir }

// DotDir returns the dot-directory name written into host projects
// (e.g., ".tina"), holding the schema file and provider components.
func DotDir() string { load(); return defaults.DotDir }

// EnvPrefix returns the environment variable prefix (e.g., "TINA").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// TelemetryURL returns the endpoint usage events are posted to.
func TelemetryURL() string { load(); return defaults.TelemetryURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "TINA_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
