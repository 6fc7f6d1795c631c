package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	watch := true

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
todo ui
todo ui --watch=false
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return output.HandleError(errors.New("ui needs a terminal, try todo list"))
			}
			conn, err := connect(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer conn.Close()

			ctx, stop := signalContext()
			defer stop()
			i := ui.UI{Engine: conn.engine, Logger: conn.logger}
			if watch {
				i.Watcher = conn.client
			}
			return output.HandleError(i.Do(ctx))
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "Follow changes made by other clients.")

	topLevel.AddCommand(cmd)
}
