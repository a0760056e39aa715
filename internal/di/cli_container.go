package di

import (
	"flag"
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/Sushmit94/solana-project/internal/config"
	"github.com/Sushmit94/solana-project/internal/logging"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	Action string
	Sender string
	Filter string

	// Inbox flags
	Dir   string
	Limit int

	// Classifier flags
	Provider  string
	Threshold float64

	// Ledger flags
	RPCURL   string
	Identity string
	Connect  bool

	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) *CLIFlags {
	flags := &CLIFlags{}

	fs.StringVar(&flags.Action, "action", "stats", "Action to run (stats, inbox, submit, reputation)")
	fs.StringVar(&flags.Sender, "sender", "", "Sender address for the reputation action")
	fs.StringVar(&flags.Filter, "filter", "all", "Inbox filter (all, safe, threats)")

	fs.StringVar(&flags.Dir, "dir", "", "Directory of .eml files to read instead of the configured inbox")
	fs.IntVar(&flags.Limit, "limit", 0, "Number of messages to fetch (0 uses the configured limit)")

	fs.StringVar(&flags.Provider, "provider", "", "Classifier provider (keyword, openai, gemini, bedrock)")
	fs.Float64Var(&flags.Threshold, "threshold", -1, "Confidence threshold for malicious verdicts")

	fs.StringVar(&flags.RPCURL, "rpc-url", "", "Ledger JSON-RPC endpoint")
	fs.StringVar(&flags.Identity, "identity", "", "Ledger identity used for submissions")
	fs.BoolVar(&flags.Connect, "connect", false, "Connect the wallet before submitting")

	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file")

	_ = fs.Parse(args)
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container
// for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		cfg, err := config.Load(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Info("Loaded configuration from file", zap.String("file", used))
		}
		applyFlags(cfg, flags)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	if err := provideServices(container); err != nil {
		return nil, err
	}
	return container, nil
}

// applyFlags overrides configuration with the flags that were set
func applyFlags(cfg *config.Config, flags *CLIFlags) {
	switch {
	case flags.Dir != "":
		cfg.Set("inbox.provider", "directory")
		cfg.Set("inbox.directory", flags.Dir)
	case cfg.GetString("inbox.provider") == "smtp":
		// a one-shot run never receives mail itself
		cfg.Set("inbox.provider", "directory")
	}
	if flags.Limit > 0 {
		cfg.Set("inbox.limit", flags.Limit)
	}
	if flags.Provider != "" {
		cfg.Set("classifier.provider", flags.Provider)
	}
	if flags.Threshold >= 0 {
		cfg.Set("classifier.threshold", flags.Threshold)
	}
	if flags.RPCURL != "" {
		cfg.Set("ledger.rpc_url", flags.RPCURL)
	}
	if flags.Identity != "" {
		cfg.Set("wallet.identity", flags.Identity)
	}

	// no background cleanup for a single run
	cfg.Set("cache.cleanup_frequency", "0s")
}
