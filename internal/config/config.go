package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("token-gateway version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	Server          ServerConfig  `mapstructure:"server"`
	Logging         LoggingConfig `mapstructure:"logging"`
	OAuth           OAuthConfig   `mapstructure:"oauth"`
	AccessRulesFile string        `mapstructure:"access_rules_file"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	Host         string   `mapstructure:"host"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

type OAuthConfig struct {
	Strategy         string `mapstructure:"strategy"` // registered strategy name guarding the gateway
	ClientID         string `mapstructure:"client_id"`
	ClientSecret     string `mapstructure:"client_secret"`
	CallbackURL      string `mapstructure:"callback_url"`
	AuthorizationURL string `mapstructure:"authorization_url"`
	TokenURL         string `mapstructure:"token_url"`
	SkipProfile      bool   `mapstructure:"skip_profile"`
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.Int("port", 0, "Port to listen on")
	pflag.String("access-rules-file", "", "Path to the access rules file")
	// Note: no pflag.Parse() here as it's called in main.go
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("TOKEN_GATEWAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("oauth.strategy", "google-token")

	// Load ./config.yaml first
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AddConfigPath("/etc/token-gateway")

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional, flags and environment can carry everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Loading additional config files
	if _, err := os.Stat("/config/config.yaml"); err == nil {
		viper.SetConfigFile("/config/config.yaml")
		// Merge /config/config.yaml (overrides overlapping keys)
		if err := viper.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Set port from flag or environment
	if port := viper.GetInt("port"); port != 0 {
		config.Server.Port = port
	}

	// Set access rules file from flag or environment
	if rulesFile := viper.GetString("access-rules-file"); rulesFile != "" {
		config.AccessRulesFile = rulesFile
	}

	if config.OAuth.ClientID == "" {
		return nil, fmt.Errorf("oauth.client_id is required, please adjust the config or set the TOKEN_GATEWAY_OAUTH_CLIENT_ID environment variable")
	}

	return &config, nil
}
