package commands

import (
	"fmt"
	"os"
	"slices"

	"github.com/leapstack-labs/vyast/internal/cli/output"
	"github.com/leapstack-labs/vyast/pkg/natspec"
	"github.com/leapstack-labs/vyast/pkg/parser"
	"github.com/spf13/cobra"
)

// NewNatSpecCommand creates the natspec command.
func NewNatSpecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "natspec <file>",
		Short: "Extract NatSpec documentation from a contract",
		Long: `Read the docstrings of a contract and print its user and developer
documentation. The module docstring documents the contract; docstrings of
@external and @public functions document each method signature.`,
		Example: `  # Show the documentation of a contract
  vyast natspec token.vy

  # As JSON, for tooling
  vyast natspec token.vy -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNatSpec(cmd, args[0])
		},
	}
}

type natspecReport struct {
	UserDoc *natspec.UserDoc `json:"userdoc" yaml:"userdoc"`
	DevDoc  *natspec.DevDoc  `json:"devdoc" yaml:"devdoc"`
}

func runNatSpec(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	r := cmdCtx.Renderer

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	source := string(content)

	mod, err := parser.ParseModule(source)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	user, dev, err := natspec.Parse(mod, source)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	cmdCtx.Logger.Debug("extracted natspec", "path", path,
		"user_methods", len(user.Methods), "dev_methods", len(dev.Methods))

	if ok, err := r.Document(natspecReport{UserDoc: user, DevDoc: dev}); ok || err != nil {
		return err
	}

	r.Header(1, path)
	if dev.Title != "" {
		r.Println(output.FormatKeyValue("Title", dev.Title))
	}
	if dev.Author != "" {
		r.Println(output.FormatKeyValue("Author", dev.Author))
	}
	if user.Notice != "" {
		r.Println(output.FormatKeyValue("Notice", user.Notice))
	}
	if dev.Details != "" {
		r.Println(output.FormatKeyValue("Details", dev.Details))
	}

	for _, sig := range methodSignatures(user, dev) {
		r.Println()
		r.Header(2, output.FormatCode(sig))
		if m, ok := user.Methods[sig]; ok {
			r.Println(output.FormatKeyValue("Notice", m.Notice))
		}
		m, ok := dev.Methods[sig]
		if !ok {
			continue
		}
		if m.Author != "" {
			r.Println(output.FormatKeyValue("Author", m.Author))
		}
		if m.Details != "" {
			r.Println(output.FormatKeyValue("Details", m.Details))
		}
		for _, name := range sortedKeys(m.Params) {
			r.Println(output.FormatKeyValue("Param "+name, m.Params[name]))
		}
		for _, name := range sortedKeys(m.Returns) {
			r.Println(output.FormatKeyValue("Returns "+name, m.Returns[name]))
		}
	}
	return nil
}

// methodSignatures returns every documented signature in sorted order.
func methodSignatures(user *natspec.UserDoc, dev *natspec.DevDoc) []string {
	var sigs []string
	for sig := range user.Methods {
		sigs = append(sigs, sig)
	}
	for sig := range dev.Methods {
		if _, ok := user.Methods[sig]; !ok {
			sigs = append(sigs, sig)
		}
	}
	slices.Sort(sigs)
	return sigs
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
