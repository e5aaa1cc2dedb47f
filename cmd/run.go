package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"minitest.dev/runner/internal/domain"
	m "minitest.dev/runner/internal/model"
)

var runMetricsFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the registered test classes",
		Long:  runLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				Output:     m.Path(viper.GetString(outputFlagName)),
				Plain:      viper.GetBool(plainConfigKey),
				FieldWidth: viper.GetInt(fieldWidthConfigKey),
				Metrics:    viper.GetBool(metricsConfigKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runMetricsFlag, metricsFlagName, viper.GetBool(metricsConfigKey), "write Prometheus metrics of the run next to the report")
	bindFlagToConfig(cmd.Flags().Lookup(metricsFlagName), metricsConfigKey)
}
