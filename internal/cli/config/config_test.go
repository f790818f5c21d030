package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFlags mirrors the persistent flags of the root command.
func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.StringP("output", "o", "", "")
	fs.String("state", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("no-state", false, "")
	fs.StringToString("decl-kind", nil, "")
	return fs
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vyast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.NoState)
	assert.Empty(t, cfg.DeclKinds)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, `
output: json
state_path: from-file.db
verbose: true
decl_kinds:
  Token: interface
  Point: struct
`)

	tests := []struct {
		name      string
		env       map[string]string
		args      []string
		wantOut   string
		wantState string
		wantKinds map[string]string
	}{
		{
			name:      "config file",
			wantOut:   "json",
			wantState: "from-file.db",
			wantKinds: map[string]string{"Token": "interface", "Point": "struct"},
		},
		{
			name:      "env over file",
			env:       map[string]string{"VYAST_OUTPUT": "yaml", "VYAST_STATE_PATH": "from-env.db"},
			wantOut:   "yaml",
			wantState: "from-env.db",
			wantKinds: map[string]string{"Token": "interface", "Point": "struct"},
		},
		{
			name:      "flags over env",
			env:       map[string]string{"VYAST_OUTPUT": "yaml"},
			args:      []string{"-o", "text", "--state", "from-flag.db", "--decl-kind", "Vault=contract"},
			wantOut:   "text",
			wantState: "from-flag.db",
			wantKinds: map[string]string{"Token": "interface", "Point": "struct", "Vault": "contract"},
		},
		{
			name:      "flag overrides one decl kind",
			args:      []string{"--decl-kind", "Token=contract"},
			wantOut:   "json",
			wantState: "from-file.db",
			wantKinds: map[string]string{"Token": "contract", "Point": "struct"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := testFlags()
			require.NoError(t, fs.Parse(tt.args))

			cfg, err := LoadConfig("", fs)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, cfg.OutputFormat)
			assert.Equal(t, tt.wantState, cfg.StatePath)
			assert.Equal(t, tt.wantKinds, cfg.DeclKinds)
			assert.True(t, cfg.Verbose)
			assert.Equal(t, "vyast.yaml", cfg.ConfigFile)
		})
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), "no_state: true\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.True(t, cfg.NoState)
	assert.Equal(t, path, cfg.ConfigFile)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestLoadConfig_EnvBool(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VYAST_NO_STATE", "true")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.NoState)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"-o", "xml"}))
	_, err := LoadConfig("", fs)
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{
			name: "valid",
			cfg:  Config{OutputFormat: "auto", StatePath: "s.db", DeclKinds: map[string]string{"A": "event"}},
		},
		{
			name: "no state needs no path",
			cfg:  Config{OutputFormat: "markdown", NoState: true},
		},
		{
			name:      "unknown output",
			cfg:       Config{OutputFormat: "html", StatePath: "s.db"},
			errSubstr: "unknown output format",
		},
		{
			name:      "missing state path",
			cfg:       Config{OutputFormat: "text"},
			errSubstr: "state_path is required",
		},
		{
			name:      "unknown decl kind",
			cfg:       Config{OutputFormat: "json", StatePath: "s.db", DeclKinds: map[string]string{"A": "enum"}},
			errSubstr: `decl_kinds.A: unknown declaration kind "enum"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestContext(t *testing.T) {
	assert.Equal(t, DefaultOutput, GetConfig(context.Background()).OutputFormat)
	assert.NotNil(t, GetLogger(context.Background()))

	cfg := &Config{OutputFormat: "json"}
	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, GetConfig(ctx))
}
