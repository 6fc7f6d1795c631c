package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TodoOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo to the end of the list",
		Example: `
todo add buy milk
todo add call the bank -d "ask about the card"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			to.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer conn.Close()

			ctx, stop := signalContext()
			defer stop()
			a := add.Add{
				Session: conn.session(io.ShowID, oo.Format),
				Draft:   item.New(to.Title, to.Description),
			}
			return output.HandleError(a.Do(ctx))
		},
	}

	options.AddDescriptionArg(cmd, to)
	options.AddShowIDArgs(cmd, io)
	options.AddFormatArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
