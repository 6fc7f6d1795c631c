package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "strike"},
		Short:   "Delete a todo",
		Example: `
todo remove 3fa2
todo rm "#3"
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
			r := remove.Remove{
				Session: conn.session(io.ShowID, oo.Format),
				Ref:     io.ID,
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddFormatArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
