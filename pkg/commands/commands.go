package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/todo/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	ro     = &options.RemoteOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "todo",
		Short: base.Wrap80("A single todo list, shared through a small HTTP server."),
		Long: base.Wrap80("Changes show up immediately and are sent to the server in the background; " +
			"if the server disagrees the list is reloaded from it."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddRemoteArgs(cmd, ro)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addServe(topLevel)
	addList(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addComplete(topLevel)
	addRemove(topLevel)
	addMove(topLevel)
	addUI(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
