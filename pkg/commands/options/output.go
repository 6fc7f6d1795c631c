package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output errors as JSON.")
}

func AddFormatArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Format, "output", "o", "",
		fmt.Sprintf("Output format. One of '%s' or '%s'; pretty printed when empty.", printers.FormatJSON, printers.FormatYAML))
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
