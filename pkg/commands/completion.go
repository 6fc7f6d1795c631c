package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/printers"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(todo completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(todo completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

// todoCompletions offers short ids, described by title, for the first
// argument.
func todoCompletions(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	conn, err := connect(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer conn.Close()

	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	items, err := conn.client.List(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, printers.Short(it.ID)+"\t"+it.Title)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
