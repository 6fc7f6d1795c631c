package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "Print the todo list",
		Example: `
todo list
todo ls --show-id
todo list -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer conn.Close()

			ctx, stop := signalContext()
			defer stop()
			l := list.List{Session: conn.session(io.ShowID, oo.Format)}
			return output.HandleError(l.Do(ctx))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddFormatArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
