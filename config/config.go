// Package config loads helpdesk client settings from a YAML file and
// HELPDESK_* environment variables. The library never requires it; it
// serves the CLI and applications embedding the client.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/helpdesk-io/helpdesk-go/auth"
	"github.com/helpdesk-io/helpdesk-go/client"
)

// settingsKeys are the recognized configuration keys. Environment-only
// setups need each key bound explicitly or viper will not see them.
var settingsKeys = []string{
	"base_url", "api_key", "cert_path", "auth_style",
	"timeout", "history_pacing", "debug", "output",
}

// Settings mirrors the client configuration plus application-level options.
type Settings struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	CertPath      string        `mapstructure:"cert_path"`
	AuthStyle     string        `mapstructure:"auth_style"`
	Timeout       time.Duration `mapstructure:"timeout"`
	HistoryPacing time.Duration `mapstructure:"history_pacing"`
	Debug         bool          `mapstructure:"debug"`
	Output        string        `mapstructure:"output"`
}

// Load reads settings from the named YAML file and from HELPDESK_*
// environment variables; the environment wins. An empty configFile loads
// from the environment alone.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("HELPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range settingsKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return settings, nil
}

// ClientConfig converts the settings into a client configuration. The
// client's own construction-time validation still applies.
func (s *Settings) ClientConfig() *client.Config {
	cfg := &client.Config{
		BaseURL:       s.BaseURL,
		APIKey:        s.APIKey,
		CertPath:      s.CertPath,
		Timeout:       s.Timeout,
		HistoryPacing: s.HistoryPacing,
		Debug:         s.Debug,
	}
	if strings.EqualFold(s.AuthStyle, "header") {
		cfg.Auth = auth.NewHeaderKeyAuth(s.APIKey)
	}
	return cfg
}
