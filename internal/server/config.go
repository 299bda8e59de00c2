package server

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address as host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8420)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Plugin defaults
	v.SetDefault("plugins.tariff.rate_per_kwh", "0.32")
	v.SetDefault("plugins.tariff.currency", "EUR")
	v.SetDefault("plugins.ws.ping_interval", "30s")
	v.SetDefault("plugins.notify.enabled", true)
	v.SetDefault("plugins.notify.url", "")
	v.SetDefault("plugins.notify.timeout", "10s")
	v.SetDefault("plugins.notify.min_level", "WARNING")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("energyguard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.energyguard")
		v.AddConfigPath("/etc/energyguard")
	}

	// Environment variable support: ENERGYGUARD_SERVER_PORT=9090
	v.SetEnvPrefix("ENERGYGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is fine -- use defaults
	}

	return v, nil
}
