// Package cmd provides the root command and CLI setup for minitest.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"minitest.dev/runner/internal/adapter"
	"minitest.dev/runner/internal/controller"
	"minitest.dev/runner/internal/domain"
	"minitest.dev/runner/internal/metrics"
)

var provider adapter.ModuleProvider
var reportStore adapter.ReportStore
var metricsRecorder metrics.Recorder
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// plainFlag disables colors and boxes in the console output.
var plainFlag bool

// fieldWidthFlag sets the width of the label column.
var fieldWidthFlag int

var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	provider = adapter.NewRegistryProvider(nil)
	reportStore = adapter.NewReportStore()
	metricsRecorder = metrics.NewRecorder()
	workflow = domain.NewWorkflow(
		provider,
		reportStore,
		ui,
		metricsRecorder,
	)
}

const rootLongDescription = `Minitest runs the test classes registered in this binary.

A test class is a type registered with minitest.Register whose methods are
marked as tests, setup or teardown methods. Parameterized tests receive their
arguments from data rows; rows that do not match the method parameters are
reported as invalid instead of being run.`

const runLongDescription = `Run every registered test class in registration order.

Each class is classified, its tests ordered by priority and then name, and
each test wrapped by the setup and teardown chains. A failing setup or
teardown aborts only its own class; the next class still runs.`

const listLongDescription = `List the execution plan of every registered test class without running it.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "minitest",
		Short:        "Marker-driven test runner",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports and journals",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&plainFlag, plainFlagName, viper.GetBool(plainConfigKey), "disable colors and styling")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(plainFlagName), plainConfigKey)

	cmd.PersistentFlags().IntVar(&fieldWidthFlag, fieldWidthFlagName, viper.GetInt(fieldWidthConfigKey), "width of the test label column")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(fieldWidthFlagName), fieldWidthConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
