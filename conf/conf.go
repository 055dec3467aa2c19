package conf

// Conf holds the process level options. Every field can be set with a flag or
// with the QLAB_* environment variable named in its tag.
type Conf struct {
	DevMode            bool   `long:"dev-mode" description:"console log encoder instead of json" env:"QLAB_DEV_MODE"`
	DisableStdoutLog   bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"QLAB_DISABLE_STDOUT_LOG"`
	EnableFileLog      bool   `long:"enable-file-log" description:"enable log in file" env:"QLAB_ENABLE_FILE_LOG"`
	LogDir             string `long:"log-dir" description:"rotating log file dir" default:"./logs" env:"QLAB_LOG_DIR"`
	LogLevel           string `long:"log-level" description:"log level" default:"warn" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"QLAB_LOG_LEVEL"`
	LogRotationMaxDays int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"QLAB_LOG_ROTATION_MAX_DAYS"`
	SettingPath        string `long:"setting-path" description:"setting file path" default:"./setting.toml" env:"QLAB_SETTING_PATH"`
	Seed               uint64 `long:"seed" description:"sampling seed, 0 picks one from the clock" default:"0" env:"QLAB_SEED"`
	Output             string `long:"output" description:"output format" default:"text" choice:"text" choice:"json" env:"QLAB_OUTPUT"`
	Theta              string `long:"theta" description:"comma separated ansatz angles such as pi/2,0.3, overrides the setting file" env:"QLAB_THETA"`
}
