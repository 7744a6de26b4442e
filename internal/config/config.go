package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Token              string        `toml:"token" env:"DISCORD_TOKEN"`
	DefaultPrefix      string        `toml:"default_prefix" env:"DEFAULT_PREFIX"`
	OwnerIDs           []string      `toml:"owners" env:"OWNER_IDS" envSeparator:","`
	ErrorLogChannel    string        `toml:"error_log_channel" env:"ERROR_LOG_CHANNEL"`
	DataDir            string        `toml:"data_dir" env:"DATA_DIR"`
	SaveInterval       time.Duration `toml:"save_interval" env:"SAVE_INTERVAL"`
	DatabaseURL        string        `toml:"database_url" env:"DATABASE_URL"`
	MetricsAddr        string        `toml:"metrics_addr" env:"METRICS_ADDR"`
	PresenceGame       string        `toml:"presence_game" env:"PRESENCE_GAME"`
	PresenceMaxRetries int           `toml:"presence_max_retries" env:"PRESENCE_MAX_RETRIES"`
	HandlerTimeout     time.Duration `toml:"handler_timeout" env:"HANDLER_TIMEOUT"`
	EmbedColour        int           `toml:"embed_colour" env:"EMBED_COLOUR"`

	API APIConfig `toml:"api"`
	Log LogConfig `toml:"log"`
}

type APIConfig struct {
	WowsApplicationID string `toml:"wows_application_id" env:"WOWS_APPLICATION_ID"`
	StackExchangeKey  string `toml:"stackexchange_key" env:"STACKEXCHANGE_KEY"`
	CurrencyURL       string `toml:"currency_url" env:"CURRENCY_API_URL"`
	LatexURL          string `toml:"latex_url" env:"LATEX_API_URL"`
	SafeBooruURL      string `toml:"safe_booru_url" env:"SAFE_BOORU_URL"`
	NSFWBooruURL      string `toml:"nsfw_booru_url" env:"NSFW_BOORU_URL"`
}

type LogConfig struct {
	Level     string `toml:"level" env:"LOG_LEVEL"`
	Format    string `toml:"format" env:"LOG_FORMAT"`
	File      string `toml:"file" env:"LOG_FILE"`
	MaxSizeMB int    `toml:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
}

// Default returns the configuration used when neither the config file nor
// the environment set a value.
func Default() *Config {
	return &Config{
		DefaultPrefix:      "?",
		DataDir:            "data",
		SaveInterval:       5 * time.Minute,
		MetricsAddr:        ":2112",
		PresenceGame:       "?help",
		PresenceMaxRetries: 5,
		HandlerTimeout:     30 * time.Second,
		EmbedColour:        0x008080,
		API: APIConfig{
			CurrencyURL:  "https://api.frankfurter.app",
			LatexURL:     "https://quicklatex.com/latex3.f",
			SafeBooruURL: "https://safebooru.org",
			NSFWBooruURL: "https://gelbooru.com",
		},
		Log: LogConfig{
			Level:     "info",
			Format:    "text",
			MaxSizeMB: 50,
		},
	}
}

// Load builds the configuration from, in increasing precedence: defaults, the
// TOML file at path (or $YASEN_CONFIG), the environment (including a .env
// file) and docker secrets.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("YASEN_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if token := readSecret("discord_token"); token != "" {
		cfg.Token = token
	}
	if dbURL := readSecret("database_url"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret, env var or config file)")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsOwner reports whether the user id is one of the configured bot owners.
func (c *Config) IsOwner(userID string) bool {
	for _, id := range c.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
