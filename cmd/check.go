package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"railsbp.dev/pkg/railsbp/internal/domain"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

var checkParallelFlag int
var checkDisableFlag []string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Analyse a Rails project",
		Long:  checkLongDescription,
		// Warnings are a regular outcome, not a usage mistake.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Check(cmd.Context(), domain.CheckArgs{
				Root:     m.Path(viper.GetString(rootConfigKey)),
				Paths:    parsePaths(args),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Reports:  m.Path(viper.GetString(outputFlagName)),
				Threads:  viper.GetInt(runParallelConfigKey),
				Disabled: viper.GetStringSlice(disabledConfigKey),
			})
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of files analysed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().StringSliceVar(&checkDisableFlag, disableFlagName, viper.GetStringSlice(disabledConfigKey), "checks to skip (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(disableFlagName), disabledConfigKey)
}
