package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/config"
	"tableflip.dev/todo/pkg/runner/serve"
	"tableflip.dev/todo/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	so := &options.ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the todo server",
		Example: `
todo serve
todo serve --listen 127.0.0.1:9000
TODO_STORE_DRIVER=sqlite todo serve
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return output.HandleError(err)
			}
			p, err := store.Open(cfg)
			if err != nil {
				return output.HandleError(err)
			}
			defer p.Close()

			ctx, stop := signalContext()
			defer stop()
			s := serve.Serve{
				Listen:      cfg.Listen,
				Persistence: p,
				Logger:      cfg.Logger(os.Stderr),
			}
			return output.HandleError(s.Do(ctx))
		},
	}

	options.AddServeArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
