package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputModes, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (expected one of %s)",
			c.OutputFormat, strings.Join(OutputModes, ", "))
	}
	if !c.NoState && c.StatePath == "" {
		return fmt.Errorf("state_path is required unless no_state is set")
	}

	names := make([]string, 0, len(c.DeclKinds))
	for name := range c.DeclKinds {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if kind := c.DeclKinds[name]; !slices.Contains(DeclKindNames, kind) {
			return fmt.Errorf("decl_kinds.%s: unknown declaration kind %q (expected one of %s)",
				name, kind, strings.Join(DeclKindNames, ", "))
		}
	}
	return nil
}
