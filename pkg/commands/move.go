package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	over := ""

	cmd := &cobra.Command{
		Use:     "move <id> [position]",
		Aliases: []string{"mv"},
		Short:   "Move a todo to a new position",
		Long: `Move a todo to a new position, counting from 0.

With --over the todo takes the place of another one, the same as dropping
it on that row in the ui.`,
		Example: `
todo move 3fa2 0
todo mv "#4" --over "#1"
`,
		Args: func(_ *cobra.Command, args []string) error {
			switch {
			case len(args) == 1 && over != "":
			case len(args) == 2 && over == "":
			default:
				return errors.New("requires a todo id and either a position or --over")
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: todoCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := move.Move{Ref: io.ID, Over: over}
			if len(args) == 2 {
				pos, err := strconv.Atoi(args[1])
				if err != nil {
					return output.HandleError(fmt.Errorf("position %q is not a number", args[1]))
				}
				m.Position = pos
			}

			conn, err := connect(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer conn.Close()

			ctx, stop := signalContext()
			defer stop()
			m.Session = conn.session(io.ShowID, oo.Format)
			return output.HandleError(m.Do(ctx))
		},
	}

	cmd.Flags().StringVar(&over, "over", "", "Drop the todo where this todo is.")
	options.AddShowIDArgs(cmd, io)
	options.AddFormatArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
