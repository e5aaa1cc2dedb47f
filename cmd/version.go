package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const unknownVersion = "minitest version unknown"

// formatVersion renders the build information of the running binary.
func formatVersion(info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil || info.Main.Version == "" {
		return unknownVersion
	}

	var b strings.Builder

	fmt.Fprintf(&b, "minitest version %s\n", info.Main.Version)
	fmt.Fprintf(&b, "built with %s", info.GoVersion)

	return b.String()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the minitest version",
		Long:  "Prints the minitest module version and the Go toolchain it was built with.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(formatVersion(debug.ReadBuildInfo()))
		},
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
