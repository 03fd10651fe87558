// Package cmd provides the root command and CLI setup for railsbp.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"railsbp.dev/pkg/railsbp/internal/adapter"
	"railsbp.dev/pkg/railsbp/internal/controller"
	"railsbp.dev/pkg/railsbp/internal/domain"
	"railsbp.dev/pkg/railsbp/internal/domain/checks"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var treeAdapter adapter.TreeAdapter
var classifier adapter.Classifier
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// projectRootFlag is the directory paths are resolved against.
var projectRootFlag string

var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	table, err := loadCategoryTable()
	cobra.CheckErr(err)

	globClassifier, err := adapter.NewGlobClassifier(table)
	cobra.CheckErr(err)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	treeAdapter = adapter.NewYAMLTreeAdapter()
	classifier = globClassifier
	reportStore = adapter.NewLocalReportStore()
	workflow = domain.NewWorkflow(
		fsAdapter,
		treeAdapter,
		classifier,
		reportStore,
		ui,
		checks.All(),
	)
}

const pathPatternsHelp = `Paths are resolved against the project root and scanned for tree dumps
(<source>.sexp.yml) produced by a Ruby parser:
  - ./...               recursively scan the project root
  - ./app/models/...    recursively scan app/models
  - ./config/routes.rb.sexp.yml   a single dump`

const rootLongDescription = `railsbp reviews a Rails application against a catalogue of best practices.
Each check looks at the syntax trees of the files it cares about (models,
routes, controllers, ...) and reports advisory warnings.

` + pathPatternsHelp

const checkLongDescription = `Analyse the given paths (default: the whole project) and report warnings.
The command exits with a non-zero status when warnings are found.

` + pathPatternsHelp

const listLongDescription = `List tree dumps with their categories and the checks that apply to them.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "railsbp",
		Short: "Rails best practices checker",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for analysis reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&projectRootFlag, rootFlagName, viper.GetString(rootConfigKey), "project root paths and categories are relative to")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rootFlagName), rootConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

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

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
