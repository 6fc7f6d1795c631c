package options

import (
	"github.com/spf13/cobra"
)

// RemoteOptions select the todo server to talk to. Values left empty fall
// back to the config file and TODO_* environment variables.
type RemoteOptions struct {
	Server string
	Policy string
}

func AddRemoteArgs(cmd *cobra.Command, o *RemoteOptions) {
	cmd.PersistentFlags().StringVar(&o.Server, "server", "",
		"Base URL of the todo server (default from config, http://localhost:8080).")
	cmd.PersistentFlags().StringVar(&o.Policy, "policy", "",
		"What to do when a change is rejected: 'resync' or 'rollback'.")
}

// ServeOptions
type ServeOptions struct {
	Listen string
}

func AddServeArgs(cmd *cobra.Command, o *ServeOptions) {
	cmd.Flags().StringVar(&o.Listen, "listen", "",
		"Address to listen on (default from config, :8080).")
}
