package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	undo := false

	cmd := &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"completed", "done"},
		Short:   "Mark a todo as done",
		Example: `
todo complete <todo id>
todo done "#1"
todo done 3fa2 --undo
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a todo id")
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: todoCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer conn.Close()

			ctx, stop := signalContext()
			defer stop()
			c := complete.Complete{
				Session: conn.session(io.ShowID, oo.Format),
				Ref:     io.ID,
				Undo:    undo,
			}
			return output.HandleError(c.Do(ctx))
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the todo as open again.")
	options.AddShowIDArgs(cmd, io)
	options.AddFormatArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
