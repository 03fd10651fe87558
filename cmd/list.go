package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"railsbp.dev/pkg/railsbp/internal/domain"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List tree dumps, their categories and applicable checks",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				Root:     m.Path(viper.GetString(rootConfigKey)),
				Paths:    parsePaths(args),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Disabled: viper.GetStringSlice(disabledConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
