package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/vyast/internal/cli/config"
	"github.com/leapstack-labs/vyast/internal/cli/output"
	"github.com/leapstack-labs/vyast/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded annotation runs",
		Long: `List the most recent annotation runs from the state database, or the
files of one run when a run id is given.`,
		Example: `  # Last 20 runs
  vyast history

  # Files of one run
  vyast history 3f0c2a4e-9d0b-4c1e-8a57-0d7c1b8f2e11 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string, opts *HistoryOptions) error {
	if config.GetConfig(cmd.Context()).NoState {
		return errors.New("run history is disabled (no_state is set)")
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	store := cmdCtx.Engine.Store()
	if len(args) == 1 {
		return showRun(cmdCtx.Renderer, store, args[0])
	}

	runs, err := store.ListRuns(opts.Limit)
	if err != nil {
		return err
	}
	if ok, err := cmdCtx.Renderer.Document(runs); ok || err != nil {
		return err
	}

	r := cmdCtx.Renderer
	r.Header(1, fmt.Sprintf("Runs (%d shown)", len(runs)))
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			string(run.Status),
			run.StartedAt.Local().Format(time.DateTime),
			strconv.Itoa(run.Files),
			run.Error,
		})
	}
	r.Table([]string{"Run", "Status", "Started", "Files", "Error"}, rows)
	return nil
}

type runReport struct {
	state.Run   `yaml:",inline"`
	FileRecords []*state.FileRecord `json:"file_records" yaml:"file_records"`
}

func showRun(r *output.Renderer, store state.Store, id string) error {
	run, err := store.GetRun(id)
	if err != nil {
		return err
	}
	files, err := store.ListFiles(id)
	if err != nil {
		return err
	}
	if ok, err := r.Document(runReport{Run: *run, FileRecords: files}); ok || err != nil {
		return err
	}

	r.Header(1, "Run "+run.ID)
	r.Println(output.FormatKeyValue("Status", string(run.Status)))
	r.Println(output.FormatKeyValue("Started", run.StartedAt.Local().Format(time.DateTime)))
	if run.CompletedAt != nil {
		r.Println(output.FormatKeyValue("Duration", run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond).String()))
	}
	if run.Error != "" {
		r.Println(output.FormatKeyValue("Error", run.Error))
	}
	r.Println()

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		hash := f.ContentHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		rows = append(rows, []string{
			strconv.Itoa(f.SourceID),
			f.Path,
			hash,
			strconv.Itoa(f.Nodes),
			strconv.Itoa(f.Folded),
			strconv.Itoa(f.Spanned),
			f.Error,
		})
	}
	r.Table([]string{"Source", "File", "Hash", "Nodes", "Folded", "Spanned", "Error"}, rows)
	return nil
}
