package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"railsbp.dev/pkg/railsbp/internal/domain"
)

// checksCmd represents the checks command.
var checksCmd = newChecksCmd()

func newChecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "Describe the available checks",
		Long:  "Show every registered check with the file categories and node kinds it observes.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Checks(cmd.Context(), domain.ChecksArgs{
				Disabled: viper.GetStringSlice(disabledConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
