package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"railsbp.dev/pkg/railsbp/internal/adapter"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default railsbp.yaml configuration file",
		Long: `Create a railsbp.yaml in the current working directory populated with the
current CLI defaults and the file classification table so it can be edited
manually.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if !viper.IsSet(categoriesConfigKey) {
				viper.SetDefault(categoriesConfigKey, categoryTableConfig(adapter.DefaultCategoryTable()))
			}

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

// categoryTableConfig converts the table into plain maps viper can write.
func categoryTableConfig(table adapter.CategoryTable) map[string]any {
	config := make(map[string]any, len(table))

	for category, patterns := range table {
		entry := map[string]any{"include": patterns.Include}
		if len(patterns.Exclude) > 0 {
			entry["exclude"] = patterns.Exclude
		}

		config[string(category)] = entry
	}

	return config
}

func init() {
	rootCmd.AddCommand(initCmd)
}
