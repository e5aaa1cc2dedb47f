package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"minitest.dev/runner/internal/domain"
	m "minitest.dev/runner/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the last recorded run",
		Long:  "Replay the journal of the last run saved in the reports directory and show its summary.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Output:     m.Path(viper.GetString(outputFlagName)),
				Plain:      viper.GetBool(plainConfigKey),
				FieldWidth: viper.GetInt(fieldWidthConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
