package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
	"github.com/dmitrijs2005/contactbook/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding config files. Zero
// values mean "not set" and leave the current Config value alone.
type FileConfig struct {
	Endpoint       string         `json:"endpoint" yaml:"endpoint"`
	CachePath      string         `json:"cache_path" yaml:"cache_path"`
	PageSize       int            `json:"page_size" yaml:"page_size"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	NotifyTimeout  timex.Duration `json:"notify_timeout" yaml:"notify_timeout"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
	LogFile        string         `json:"log_file" yaml:"log_file"`
}

// parseFile overlays cfg with the file named by -c or -config. It panics on
// read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.Endpoint != "" {
		cfg.Endpoint = fc.Endpoint
	}
	if fc.CachePath != "" {
		cfg.CachePath = fc.CachePath
	}
	if fc.PageSize != 0 {
		cfg.PageSize = fc.PageSize
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.NotifyTimeout.Duration != 0 {
		cfg.NotifyTimeout = fc.NotifyTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
}
