package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	BotToken        string
	SigningSecret   string
	SlackAPIURL     string
	DatabaseURL     string
	DatabaseType    string
	IDScheme        string
	JournalSalt     string
	BotName         string
	DeliveryTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// LoadEnvFile reads a .env file into the environment if one exists.
// Variables already set in the real environment are kept.
func LoadEnvFile(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pollbot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.SlackAPIURL, "slack-api-url", "", "Slack Web API base URL")
	fs.DurationVar(&cfg.DeliveryTimeout, "delivery-timeout", 0, "Timeout for each Slack API call")

	// Optional audit journal
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Journal database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BotToken, "token", "", "Slack bot token (prefer env)")
	fs.StringVar(&cfg.SigningSecret, "signing-secret", "", "Slack signing secret (prefer env)")
	fs.StringVar(&cfg.JournalSalt, "journal-salt", "", "Salt for hashing user IDs in the journal (prefer env)")

	// Behaviour
	fs.StringVar(&cfg.IDScheme, "id-scheme", "", "Poll ID scheme (counter or uuid)")
	fs.StringVar(&cfg.BotName, "bot-name", "", "Bot name shown in the invite instruction")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.DeliveryTimeout == 0 {
		if s := os.Getenv("DELIVERY_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil || d <= 0 {
				return Config{}, errors.New("invalid DELIVERY_TIMEOUT env variable")
			}
			cfg.DeliveryTimeout = d
		} else {
			cfg.DeliveryTimeout = 10 * time.Second
		}
	}

	cfg.SlackAPIURL = orEnv(cfg.SlackAPIURL, "SLACK_API_URL", "")
	cfg.DatabaseURL = orEnv(cfg.DatabaseURL, "DATABASE_URL", "")
	cfg.DatabaseType = orEnv(cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	cfg.IDScheme = orEnv(cfg.IDScheme, "POLL_ID_SCHEME", "counter")
	cfg.BotName = orEnv(cfg.BotName, "BOT_NAME", "Polls")
	cfg.LogLevel = orEnv(cfg.LogLevel, "LOG_LEVEL", "info")
	cfg.LogFormat = orEnv(cfg.LogFormat, "LOG_FORMAT", "text")

	// Secrets - MUST be provided
	cfg.BotToken = orEnv(cfg.BotToken, "SLACK_BOT_TOKEN", "")
	if cfg.BotToken == "" {
		return Config{}, errors.New("SLACK_BOT_TOKEN required")
	}

	cfg.SigningSecret = orEnv(cfg.SigningSecret, "SLACK_SIGNING_SECRET", "")
	if cfg.SigningSecret == "" {
		return Config{}, errors.New("SLACK_SIGNING_SECRET required")
	}

	// The journal salt only matters once there is a journal
	cfg.JournalSalt = orEnv(cfg.JournalSalt, "JOURNAL_SALT", "")
	if cfg.DatabaseURL != "" && cfg.JournalSalt == "" {
		return Config{}, errors.New("JOURNAL_SALT required when DATABASE_URL is set")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	switch cfg.DatabaseType {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid database type %q (sqlite or postgres)", cfg.DatabaseType)
	}
	switch cfg.IDScheme {
	case "counter", "uuid":
	default:
		return fmt.Errorf("invalid poll ID scheme %q (counter or uuid)", cfg.IDScheme)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (text or json)", cfg.LogFormat)
	}
	return nil
}

func orEnv(v, key, def string) string {
	if v != "" {
		return v
	}
	if env := os.Getenv(key); env != "" {
		return env
	}
	return def
}
