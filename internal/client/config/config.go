package config

import "time"

// Config holds runtime settings for the contactbook CLI.
type Config struct {
	Endpoint       string        `env:"ENDPOINT"`
	CachePath      string        `env:"CACHE_PATH"`
	PageSize       int           `env:"PAGE_SIZE"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	NotifyTimeout  time.Duration `env:"NOTIFY_TIMEOUT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"` // text, json or zap
	LogFile   string `env:"LOG_FILE"`   // empty logs to stderr
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Endpoint = "https://wpe-hiring.tokopedia.net/graphql"
	c.CachePath = "contacts.db"
	c.PageSize = 10
	c.RequestTimeout = 10 * time.Second
	c.NotifyTimeout = 3 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
