// Package config provides configuration management for the vyast CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string `koanf:"output"`
	StatePath    string `koanf:"state_path"`
	Verbose      bool   `koanf:"verbose"`
	NoState      bool   `koanf:"no_state"`
	// DeclKinds maps declaration names to a kind, laid over the kinds the
	// parser finds in the source.
	DeclKinds map[string]string `koanf:"decl_kinds"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultStateFile = ".vyast/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix        = "VYAST_"
)

// ConfigFileNames are looked up in the working directory when no config
// file is given.
var ConfigFileNames = []string{"vyast.yaml", "vyast.yml"}

// OutputModes are the accepted values of the output key.
var OutputModes = []string{"auto", "text", "markdown", "json", "yaml"}

// DeclKindNames are the accepted values of the decl_kinds map.
var DeclKindNames = []string{"contract", "struct", "interface", "event"}
