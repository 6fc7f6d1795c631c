package options

import (
	"github.com/spf13/cobra"
)

// TodoOptions holds the fields a todo can be created or edited with.
type TodoOptions struct {
	Title       string
	Description string
	Completed   bool
}

func AddDescriptionArg(cmd *cobra.Command, o *TodoOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer text shown under the title.")
}

func AddTitleArg(cmd *cobra.Command, o *TodoOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Replace the title.")
}

// Changed reports which of the edit flags were given on the command line.
func (o *TodoOptions) Changed(cmd *cobra.Command) (title, description bool) {
	return cmd.Flags().Changed("title"), cmd.Flags().Changed("description")
}
