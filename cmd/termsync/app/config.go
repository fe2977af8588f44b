package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/termsync/pkg/constants"
	"github.com/agentstation/termsync/pkg/errors"
)

// Transport names accepted by the transport setting.
const (
	TransportHTTP = "http"
	TransportCOM  = "com"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// QuickBooks connection
	Transport    string
	GatewayURL   string
	APIKey       string
	APIKeyHeader string
	AppID        string
	AppName      string
	CompanyFile  string
	Timeout      time.Duration

	// Spreadsheet
	Sheet string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later through UpdateFromFlags)
// 2. TERMSYNC_* environment variables
// 3. .env and .env.local files
// 4. Config file (configFile, or .termsync.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("transport", TransportHTTP)
	v.SetDefault("app_name", constants.DefaultAppName)
	v.SetDefault("sheet", constants.DefaultSheet)
	v.SetDefault("timeout", constants.SyncTimeout)
	v.SetDefault("format", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// No config file is fine.
		case errors.Is(err, os.ErrNotExist):
			return nil, errors.WrapIO("read", configFile, err)
		default:
			return nil, errors.NewParseError(configType(configFile), configFile, "invalid config file", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Transport:    strings.ToLower(v.GetString("transport")),
		GatewayURL:   v.GetString("gateway_url"),
		APIKey:       v.GetString("api_key"),
		APIKeyHeader: v.GetString("api_key_header"),
		AppID:        v.GetString("app_id"),
		AppName:      v.GetString("app_name"),
		CompanyFile:  v.GetString("company_file"),
		Timeout:      v.GetDuration("timeout"),

		Sheet: v.GetString("sheet"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// Validate checks that the selected transport has what it needs.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportHTTP:
		if c.GatewayURL == "" {
			return errors.NewConfigError("transport", "gateway_url is required for the http transport", nil)
		}
	case TransportCOM:
	default:
		return errors.NewConfigError("transport", "unknown transport "+c.Transport+" (want http or com)", nil)
	}
	if c.Timeout < 0 {
		return errors.NewConfigError("timeout", "must not be negative", nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func configType(file string) string {
	if ext := strings.TrimPrefix(filepath.Ext(file), "."); ext != "" {
		return ext
	}
	return "yaml"
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
