package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the command line configuration. Values come from flags,
// DASHBOARD_* environment variables and an optional config file, in that order
// of precedence.
type Config struct {
	APIURL   string        `mapstructure:"api_url"`
	Contact  string        `mapstructure:"contact"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Currency string        `mapstructure:"currency"`
	LogLevel string        `mapstructure:"log_level"`
	Debug    bool          `mapstructure:"debug"`
}

// NewDefault returns the configuration used when nothing is set.
func NewDefault() *Config {
	return &Config{
		APIURL:   "http://localhost:8080",
		Timeout:  30 * time.Second,
		Currency: "USD",
		LogLevel: "warn",
	}
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	defaults := NewDefault()
	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("api-url", defaults.APIURL, "base URL of the record-store API")
	flags.String("contact", "", "id of the contact whose transactions are shown")
	flags.Duration("timeout", defaults.Timeout, "timeout of each record-store request")
	flags.String("currency", defaults.Currency, "currency of amounts stored without one")
	flags.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flags.Bool("debug", false, "dump record-store requests and responses")

	for _, name := range []string{"api-url", "contact", "timeout", "currency", "log-level", "debug"} {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func loadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv() // allow using environment variables to override

	cfg := NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, errors.New("api url is required")
	}
	return cfg, nil
}
