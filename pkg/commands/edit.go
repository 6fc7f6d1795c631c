package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	to := &options.TodoOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or description of a todo",
		Example: `
todo edit 3fa2 --title "buy oat milk"
todo edit "#2" -d ""
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one todo id")
			}
			return nil
		},
		ValidArgsFunction: todoCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer conn.Close()

			ctx, stop := signalContext()
			defer stop()
			e := edit.Edit{
				Session: conn.session(true, oo.Format),
				Ref:     args[0],
			}
			title, description := to.Changed(cmd)
			if title {
				e.Title = &to.Title
			}
			if description {
				e.Description = &to.Description
			}
			return output.HandleError(e.Do(ctx))
		},
	}

	options.AddTitleArg(cmd, to)
	options.AddDescriptionArg(cmd, to)
	options.AddFormatArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
