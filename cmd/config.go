package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"modedit.dev/pkg/modedit/internal/adapter"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "modedit"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	dryRunFlagName      = "dry-run"
	diffFlagName        = "diff"
	runParallelFlagName = "parallel"
	verboseFlagName     = "verbose"

	dryRunConfigKey      = "dry_run"
	diffConfigKey        = "diff"
	runParallelConfigKey = "run.parallel"

	printQuoteKey     = "print.quote"
	printIndentKey    = "print.indent"
	printQuoteKeysKey = "print.quote_keys"

	styleAuto   = "auto"
	styleDouble = "double"
	styleSingle = "single"

	defaultDryRun      = false
	defaultDiff        = false
	defaultRunParallel = 4
	defaultPrintQuote  = styleAuto
	defaultPrintIndent = styleAuto
	defaultQuoteKeys   = false

	envPrefix = "MODEDIT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".modedit.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(dryRunConfigKey, defaultDryRun)
	viper.SetDefault(diffConfigKey, defaultDiff)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(printQuoteKey, defaultPrintQuote)
	viper.SetDefault(printIndentKey, defaultPrintIndent)
	viper.SetDefault(printQuoteKeysKey, defaultQuoteKeys)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// printOptionsFromConfig builds printer options from the print.* keys.
func printOptionsFromConfig() adapter.PrintOptions {
	opts := adapter.DefaultPrintOptions()

	switch strings.ToLower(strings.TrimSpace(viper.GetString(printQuoteKey))) {
	case styleSingle:
		opts.Quote = '\''
	case styleDouble:
		opts.Quote = '"'
	default:
		opts.DetectQuote = true
	}

	indent := strings.ToLower(strings.TrimSpace(viper.GetString(printIndentKey)))

	switch n, err := strconv.Atoi(indent); {
	case indent == "tab":
		opts.Indent = "\t"
	case err == nil && n > 0:
		opts.Indent = strings.Repeat(" ", n)
	default:
		opts.DetectIndent = true
	}

	opts.QuoteKeys = viper.GetBool(printQuoteKeysKey)

	return opts
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
