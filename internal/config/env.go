package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds command-line defaults that can be set from the environment.
// Flags given explicitly on the command line still win.
type EnvConfig struct {
	DBPath     string `env:"BEARRUN_DB"        envDefault:"~/.bearrun/runs.db"`
	FPS        int    `env:"BEARRUN_FPS"       envDefault:"60"`
	Seed       int64  `env:"BEARRUN_SEED"      envDefault:"0"`
	ConfigPath string `env:"BEARRUN_CONFIG"`
	SSHAddr    string `env:"BEARRUN_SSH_ADDR"  envDefault:":23234"`
	LogLevel   string `env:"BEARRUN_LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"BEARRUN_LOG_FILE"  envDefault:"~/.bearrun/bearrun.log"`
	Audio      bool   `env:"BEARRUN_AUDIO"     envDefault:"true"`
	Player     string `env:"BEARRUN_PLAYER"`
}

// ParseEnv loads EnvConfig from environment variables.
func ParseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}
