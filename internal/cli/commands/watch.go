package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/vyast/internal/engine"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-annotate contracts whenever they change",
		Long: `Annotate the given files and directories once, then again each time a
source file is written or created. Stop with Ctrl-C.`,
		Example: `  # Watch every contract below the working directory
  vyast watch

  # Watch a single directory without recording history
  vyast watch contracts/ --no-state`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	paths := pathArgs(args)

	return cmdCtx.Engine.Watch(cmd.Context(), paths, func(unit *engine.Unit, err error) {
		stamp := time.Now().Format(time.TimeOnly)
		if err != nil {
			r.Error(fmt.Sprintf("%s %v", stamp, err))
			return
		}
		r.Header(2, fmt.Sprintf("%s annotated %d files", stamp, len(unit.Files)))
		for _, f := range unit.Files {
			renderFileStatus(r, f)
		}
	})
}
