package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"railsbp.dev/pkg/railsbp/internal/domain/checks"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the railsbp build version, the Go version and the number of registered checks.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("railsbp version\t", info.Main.Version)
			cmd.Println("go version\t", info.GoVersion)
			cmd.Println("checks\t\t", len(checks.All()))
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
