package constants

// Log file names and rotation settings.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.countdown/logs/countdown.log
	CLILogFileName = "countdown.log"

	// LogMaxSizeMB is the size in megabytes at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days to retain rotated log files.
	LogMaxAgeDays = 28

	// LogCompress controls gzip compression of rotated log files.
	LogCompress = true
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global configuration file.
	// This file is located in the countdown home directory.
	GlobalConfigName = "config.yaml"

	// EnvFileName is the dotenv file loaded at startup when present.
	EnvFileName = ".env"
)

// EnvPrefix is the prefix for all environment variable overrides (COUNTDOWN_*).
const EnvPrefix = "COUNTDOWN"
