package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config wraps the dashboard's viper instance
type Config struct {
	v *viper.Viper
}

// New loads configuration from the standard locations and the environment
func New() (*Config, error) {
	return Load("")
}

// Load reads configuration from path, or from the standard locations when
// path is empty. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/threat-dashboard/")
		v.AddConfigPath("$HOME/.threat-dashboard")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("THREAT_DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Inbox
	v.SetDefault("inbox.provider", "smtp")
	v.SetDefault("inbox.limit", 10)
	v.SetDefault("inbox.capacity", 100)
	v.SetDefault("inbox.directory", "./mail")
	v.SetDefault("inbox.smtp.listen_address", "0.0.0.0:2525")
	v.SetDefault("inbox.smtp.domain", "localhost")
	v.SetDefault("inbox.smtp.max_message_bytes", 10*1024*1024)
	v.SetDefault("inbox.smtp.max_recipients", 50)
	v.SetDefault("inbox.smtp.timeout", "30s")
	v.SetDefault("inbox.imap.address", "localhost:993")
	v.SetDefault("inbox.imap.tls", true)
	v.SetDefault("inbox.imap.mailbox", "INBOX")
	v.SetDefault("inbox.imap.timeout", "30s")

	// Classifier
	v.SetDefault("classifier.provider", "keyword")
	v.SetDefault("classifier.threshold", 0.5)
	v.SetDefault("classifier.trusted_senders", []string{})
	v.SetDefault("classifier.max_body_size", 4096)

	// Verdict cache
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/verdict_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/threat_dashboard")

	// Ledger
	v.SetDefault("ledger.rpc_url", "http://localhost:8899")
	v.SetDefault("ledger.program_id", "")
	v.SetDefault("ledger.rate_limit", 5.0)
	v.SetDefault("ledger.burst", 1)
	v.SetDefault("ledger.timeout", "12s")

	// Wallet
	v.SetDefault("wallet.identity", "")
	v.SetDefault("wallet.auto_connect", false)

	// Dashboard
	v.SetDefault("dashboard.unclassified_policy", "exclude")
	v.SetDefault("dashboard.refresh_interval", "0s")

	// HTTP
	v.SetDefault("http.listen_address", "0.0.0.0:8080")
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "60s")

	// Bedrock
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 1000)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.top_p", 0.9)

	// Gemini
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 1000)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.top_p", 0.9)

	// OpenAI
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model_name", "gpt-4")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration parses a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(c.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

// Set overrides a value, typically from a command line flag
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
