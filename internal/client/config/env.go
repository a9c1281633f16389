package config

import (
	"github.com/caarlos0/env/v11"
)

const envPrefix = "CONTACTBOOK_"

// parseEnv overlays cfg with CONTACTBOOK_* variables. Unset variables leave
// the current values alone. It panics on malformed values.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		panic(err)
	}
}
