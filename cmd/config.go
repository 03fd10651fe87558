package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"railsbp.dev/pkg/railsbp/internal/adapter"
)

// railsbp.yaml layout:
//
//	version: 1
//	output: .railsbp-reports
//	paths:
//	  root: .
//	  exclude: ["^vendor/"]
//	run:
//	  parallel: 4
//	checks:
//	  disabled: [not-use-default-route]
//	categories:
//	  model:
//	    include: ["app/models/**/*.rb"]
//	    exclude: ["app/models/concerns/**"]
//	log:
//	  filename: .railsbp.log
//	  level: info
//
// Every key can also be set from the environment, e.g. RAILSBP_RUN_PARALLEL.
const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "railsbp"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "RAILSBP"
)

// Flags.
const (
	outputFlagName      = "output"
	excludeFlagName     = "exclude"
	rootFlagName        = "root"
	runParallelFlagName = "parallel"
	disableFlagName     = "disable"
	logFileFlagName     = "log-file"
	verboseFlagName     = "verbose"
)

// Project keys and their defaults. The output directory shares its key with
// the flag name.
const (
	rootConfigKey        = "paths.root"
	excludeConfigKey     = "paths.exclude"
	runParallelConfigKey = "run.parallel"
	disabledConfigKey    = "checks.disabled"
	categoriesConfigKey  = "categories"

	defaultReportsDir  = ".railsbp-reports"
	defaultRoot        = "."
	defaultRunParallel = 1
)

// Log keys and their defaults. Sizes are in megabytes, ages in days.
const (
	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".railsbp.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configFileErr keeps a railsbp.yaml read failure until the logger exists.
var configFileErr error

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setConfigDefaults()

	configFileErr = readConfigFile()
}

func setConfigDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)

	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(rootConfigKey, defaultRoot)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(disabledConfigKey, []string{})

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// readConfigFile loads railsbp.yaml. A missing file is not an error: the
// defaults describe a conventional Rails project.
func readConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read %s: %w", configFileName, err)
}

// loadCategoryTable returns the default classification table with the
// categories set in configuration replacing their defaults.
func loadCategoryTable() (adapter.CategoryTable, error) {
	table := adapter.DefaultCategoryTable()

	if !viper.IsSet(categoriesConfigKey) {
		return table, nil
	}

	var overrides adapter.CategoryTable
	if err := viper.UnmarshalKey(categoriesConfigKey, &overrides); err != nil {
		return nil, fmt.Errorf("decode %s: %w", categoriesConfigKey, err)
	}

	for category, patterns := range overrides {
		table[category] = patterns
	}

	return table, nil
}

// parseSlogLevel accepts level names or numeric slog levels (-4 is debug).
func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))

	switch level {
	case "":
		return defaultLevel
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the default slog logger at a rotating log file.
// verbose forces debug level over log.level.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	globalLogger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	}))
	slog.SetDefault(globalLogger)

	if configFileErr != nil {
		slog.Warn("Ignoring unreadable configuration", "file", configFileName, "error", configFileErr)
		return
	}

	slog.Debug("Configuration loaded",
		"file", viper.ConfigFileUsed(),
		"root", viper.GetString(rootConfigKey),
		"parallel", viper.GetInt(runParallelConfigKey),
		"disabled", viper.GetStringSlice(disabledConfigKey),
	)
}
