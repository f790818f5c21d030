package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/vyast/internal/cli/output"
	"github.com/leapstack-labs/vyast/internal/engine"
	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/spf13/cobra"
)

// AnnotateOptions holds options for the annotate command.
type AnnotateOptions struct {
	Dump bool
}

// NewAnnotateCommand creates the annotate command.
func NewAnnotateCommand() *cobra.Command {
	opts := &AnnotateOptions{}

	cmd := &cobra.Command{
		Use:   "annotate [paths...]",
		Short: "Parse and annotate contract source files",
		Long: `Parse contract source files and decorate their syntax trees with node ids,
constant kinds, declaration kinds and source spans.

Files given on the command line form one compilation unit: they receive
source ids 0, 1, ... in argument order. Directories are searched for .vy and
.vyi files. Without arguments the working directory is used.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # Annotate every contract below the working directory
  vyast annotate

  # Annotate two files as one unit and print the decorated trees
  vyast annotate token.vy vault.vy --dump

  # Machine-readable output with trees
  vyast annotate contracts/ --dump -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "Include the decorated syntax trees")

	return cmd
}

// fileReport is the machine-readable result for one file.
type fileReport struct {
	Path      string            `json:"path" yaml:"path"`
	SourceID  int               `json:"source_id" yaml:"source_id"`
	Hash      string            `json:"hash" yaml:"hash"`
	Changed   bool              `json:"changed" yaml:"changed"`
	Summary   engine.Summary    `json:"summary" yaml:"summary"`
	DeclKinds map[string]string `json:"decl_kinds,omitempty" yaml:"decl_kinds,omitempty"`
	Error     string            `json:"error,omitempty" yaml:"error,omitempty"`
	AST       *ast.Dumped       `json:"ast,omitempty" yaml:"ast,omitempty"`
}

type unitReport struct {
	RunID string       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Files []fileReport `json:"files" yaml:"files"`
}

func runAnnotate(cmd *cobra.Command, args []string, opts *AnnotateOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := engine.Discover(pathArgs(args))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found in %s", strings.Join(pathArgs(args), ", "))
	}

	unit, err := cmdCtx.Engine.AnnotateFiles(cmd.Context(), files)
	if err != nil {
		return err
	}

	if err := renderUnit(cmdCtx.Renderer, unit, opts.Dump); err != nil {
		return err
	}
	return unit.Err()
}

func newUnitReport(unit *engine.Unit, dump bool) unitReport {
	report := unitReport{RunID: unit.RunID, Files: make([]fileReport, 0, len(unit.Files))}
	for _, f := range unit.Files {
		fr := fileReport{
			Path:      f.Path,
			SourceID:  f.SourceID,
			Hash:      f.Hash,
			Changed:   f.Changed,
			Summary:   f.Summary,
			DeclKinds: f.DeclKinds,
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		if dump && f.Module != nil && f.Err == nil {
			fr.AST = ast.Dump(f.Module)
		}
		report.Files = append(report.Files, fr)
	}
	return report
}

func renderUnit(r *output.Renderer, unit *engine.Unit, dump bool) error {
	if ok, err := r.Document(newUnitReport(unit, dump)); ok || err != nil {
		return err
	}

	r.Header(1, fmt.Sprintf("Annotated %d files", len(unit.Files)))
	if r.EffectiveMode() == output.ModeMarkdown {
		if unit.RunID != "" {
			r.Println(output.FormatKeyValue("Run", unit.RunID))
			r.Println()
		}
		r.Table(summaryHeader, summaryRows(unit))
	} else {
		for _, f := range unit.Files {
			renderFileStatus(r, f)
		}
	}

	if !dump {
		return nil
	}
	for _, f := range unit.Files {
		if f.Err != nil || f.Module == nil {
			continue
		}
		r.Println()
		r.Header(2, f.Path)
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println("```")
			writeTree(r, ast.Dump(f.Module), 0)
			r.Println("```")
		} else {
			writeTree(r, ast.Dump(f.Module), 0)
		}
	}
	return nil
}

var summaryHeader = []string{"File", "Source", "Nodes", "Folded", "Spanned", "Constants", "Status"}

func summaryRows(unit *engine.Unit) [][]string {
	rows := make([][]string, 0, len(unit.Files))
	for _, f := range unit.Files {
		s := f.Summary
		rows = append(rows, []string{
			f.Path,
			strconv.Itoa(f.SourceID),
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Folded),
			strconv.Itoa(s.Spanned),
			strconv.Itoa(s.Constants),
			fileStatus(f),
		})
	}
	return rows
}

func fileStatus(f *engine.File) string {
	switch {
	case f.Err != nil:
		return "error"
	case f.Changed:
		return "changed"
	default:
		return "unchanged"
	}
}

func renderFileStatus(r *output.Renderer, f *engine.File) {
	if f.Err != nil {
		r.StatusLine(f.Path, false, "error", f.Err.Error())
		return
	}
	s := f.Summary
	detail := fmt.Sprintf("%d nodes, %d folded, %d spanned", s.Nodes, s.Folded, s.Spanned)
	r.StatusLine(f.Path, true, fileStatus(f), detail)
}

// writeTree prints one line per node, children indented under their parent:
//
//	Num #4 -5 (4:2:0)
func writeTree(r *output.Renderer, d *ast.Dumped, depth int) {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(d.ASTType)
	if d.DeclKind != nil {
		sb.WriteString("[" + *d.DeclKind + "]")
	}
	fmt.Fprintf(&sb, " #%d", d.NodeID)
	if d.Label != "" {
		sb.WriteString(" " + d.Label)
	}
	if d.Src != "" {
		sb.WriteString(" (" + d.Src + ")")
	}
	r.Println(sb.String())

	for _, child := range d.Children {
		writeTree(r, child, depth+1)
	}
}
