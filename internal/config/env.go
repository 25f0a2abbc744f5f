package config

import (
	"os"
)

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string)
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  It points to where the config should be loaded from, so it is handled
		// prior to loading the config.
		name:  "TANPEN_CONFIG_PATH",
		desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) {}, // Special case, no-op
	},
	{
		name:  "TANPEN_CONFIG_API_BASE_URL",
		desc:  "Sets the base URL of the video API.  Required, no default",
		apply: func(c *Config, s string) { c.API.BaseURL = s },
	},
	{
		name:  "TANPEN_CONFIG_API_TIMEOUT",
		desc:  "Sets the timeout applied to API requests other than video downloads.  Default: 30s",
		apply: func(c *Config, s string) { c.API.Timeout = s },
	},
	{
		name:  "TANPEN_CONFIG_SESSION_INIT_DATA",
		desc:  "Sets the host-issued session init data.  Default: None (Tanpen shows the 'open inside host' screen)",
		apply: func(c *Config, s string) { c.Session.InitData = s },
	},
	{
		name:  "TANPEN_CONFIG_PLAYER_TYPE",
		desc:  "Sets the video player type.  Should be one of `mpv` or `custom`.  Default: mpv",
		apply: func(c *Config, s string) { c.Player.Type = s },
	},
	{
		name:  "TANPEN_CONFIG_PLAYER_PATH",
		desc:  "Sets the path to a video player binary.  Default: mpv",
		apply: func(c *Config, s string) { c.Player.Path = s },
	},
	{
		name:  "TANPEN_CONFIG_PLAYER_ARGS",
		desc:  "Sets additional video player arguments.  Default: None",
		apply: func(c *Config, s string) { c.Player.Args = s },
	},
	{
		name:  "TANPEN_CONFIG_STREAM_LISTEN_ADDR",
		desc:  "Sets the loopback address the local video server binds to.  Default: 127.0.0.1:0",
		apply: func(c *Config, s string) { c.Stream.ListenAddr = s },
	},
	{
		name:  "TANPEN_CONFIG_FEEDBACK_HAPTICS",
		desc:  "Sets how haptic feedback is rendered.  One of: bell, log, off.  Default: bell",
		apply: func(c *Config, s string) { c.Feedback.Haptics = s },
	},
	{
		name:  "TANPEN_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: trace, debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) { c.Logging.Level = s },
	},
	{
		name:  "TANPEN_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) { c.Logging.FilePath = s },
	},
}

func applyEnvVarOverrides(c *Config) {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			envVar.apply(c, value)
		}
	}
}

// EnvVarHelp returns "NAME: description" lines for every supported environment variable
func EnvVarHelp() []string {
	lines := make([]string, 0, len(supportedEnvVars))
	for _, envVar := range supportedEnvVars {
		lines = append(lines, envVar.name+": "+envVar.desc)
	}
	return lines
}
