package config

const (
	defaultDataDir        = "~/.local/share/mymark"
	defaultLogDir         = "~/.local/share/mymark/logs"
	defaultFeedSource     = "demo"
	defaultFeedDemoCount  = 8
	defaultRequestTimeout = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Feed: Feed{
			Source:    defaultFeedSource,
			DemoCount: defaultFeedDemoCount,
		},
		Notifications: Notifications{
			RequestTimeout: defaultRequestTimeout,
			SessionSummary: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
