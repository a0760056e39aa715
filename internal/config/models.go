package config

import "time"

// LoggingConfig selects the zap level and encoding
type LoggingConfig struct {
	Level  string
	Format string
}

// SMTPConfig configures the inbound SMTP listener
type SMTPConfig struct {
	ListenAddress   string
	Domain          string
	MaxMessageBytes int64
	MaxRecipients   int
	Timeout         time.Duration
}

// IMAPConfig configures the IMAP inbox provider
type IMAPConfig struct {
	Address  string
	Username string
	Password string
	TLS      bool
	Mailbox  string
	Timeout  time.Duration
}

// InboxConfig selects and configures the inbox provider
type InboxConfig struct {
	Provider  string
	Limit     int
	Capacity  int
	Directory string
	SMTP      SMTPConfig
	IMAP      IMAPConfig
}

// ClassifierConfig configures threat classification
type ClassifierConfig struct {
	Provider       string
	Threshold      float64
	TrustedSenders []string
	MaxBodySize    int
}

// CacheConfig configures the verdict cache
type CacheConfig struct {
	Enabled          bool
	Type             string
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
}

// LedgerConfig configures the ledger RPC client
type LedgerConfig struct {
	RPCURL    string
	ProgramID string
	RateLimit float64
	Burst     int
	Timeout   time.Duration
}

// WalletConfig configures the ledger identity
type WalletConfig struct {
	Identity    string
	AutoConnect bool
}

// DashboardConfig configures the dashboard session
type DashboardConfig struct {
	UnclassifiedPolicy string
	RefreshInterval    time.Duration
}

// HTTPConfig configures the dashboard API server
type HTTPConfig struct {
	ListenAddress string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// duration returns the parsed duration or fallback when the value is invalid
func (c *Config) duration(key string, fallback time.Duration) time.Duration {
	d, err := c.GetDuration(key)
	if err != nil {
		return fallback
	}
	return d
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}

// GetInbox returns the inbox provider configuration
func (c *Config) GetInbox() InboxConfig {
	return InboxConfig{
		Provider:  c.GetString("inbox.provider"),
		Limit:     c.GetInt("inbox.limit"),
		Capacity:  c.GetInt("inbox.capacity"),
		Directory: c.GetString("inbox.directory"),
		SMTP: SMTPConfig{
			ListenAddress:   c.GetString("inbox.smtp.listen_address"),
			Domain:          c.GetString("inbox.smtp.domain"),
			MaxMessageBytes: c.v.GetInt64("inbox.smtp.max_message_bytes"),
			MaxRecipients:   c.GetInt("inbox.smtp.max_recipients"),
			Timeout:         c.duration("inbox.smtp.timeout", 30*time.Second),
		},
		IMAP: IMAPConfig{
			Address:  c.GetString("inbox.imap.address"),
			Username: c.GetString("inbox.imap.username"),
			Password: c.GetString("inbox.imap.password"),
			TLS:      c.GetBool("inbox.imap.tls"),
			Mailbox:  c.GetString("inbox.imap.mailbox"),
			Timeout:  c.duration("inbox.imap.timeout", 30*time.Second),
		},
	}
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		Provider:       c.GetString("classifier.provider"),
		Threshold:      c.GetFloat64("classifier.threshold"),
		TrustedSenders: c.GetStringSlice("classifier.trusted_senders"),
		MaxBodySize:    c.GetInt("classifier.max_body_size"),
	}
}

// GetCache returns the verdict cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Enabled:          c.GetBool("cache.enabled"),
		Type:             c.GetString("cache.type"),
		TTL:              c.duration("cache.ttl", 24*time.Hour),
		CleanupFrequency: c.duration("cache.cleanup_frequency", time.Hour),
		SQLitePath:       c.GetString("cache.sqlite_path"),
		MySQLDSN:         c.GetString("cache.mysql_dsn"),
	}
}

// GetLedger returns the ledger RPC configuration
func (c *Config) GetLedger() LedgerConfig {
	return LedgerConfig{
		RPCURL:    c.GetString("ledger.rpc_url"),
		ProgramID: c.GetString("ledger.program_id"),
		RateLimit: c.GetFloat64("ledger.rate_limit"),
		Burst:     c.GetInt("ledger.burst"),
		Timeout:   c.duration("ledger.timeout", 12*time.Second),
	}
}

// GetWallet returns the wallet configuration
func (c *Config) GetWallet() WalletConfig {
	return WalletConfig{
		Identity:    c.GetString("wallet.identity"),
		AutoConnect: c.GetBool("wallet.auto_connect"),
	}
}

// GetDashboard returns the dashboard session configuration
func (c *Config) GetDashboard() DashboardConfig {
	return DashboardConfig{
		UnclassifiedPolicy: c.GetString("dashboard.unclassified_policy"),
		RefreshInterval:    c.duration("dashboard.refresh_interval", 0),
	}
}

// GetHTTP returns the API server configuration
func (c *Config) GetHTTP() HTTPConfig {
	return HTTPConfig{
		ListenAddress: c.GetString("http.listen_address"),
		ReadTimeout:   c.duration("http.read_timeout", 15*time.Second),
		WriteTimeout:  c.duration("http.write_timeout", 60*time.Second),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}
