package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"minitest.dev/runner/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List test classes and their execution plans",
		Long:  listLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				Plain:      viper.GetBool(plainConfigKey),
				FieldWidth: viper.GetInt(fieldWidthConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
