package engagebot

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/disgoorg/snowflake/v2"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ellavondegurechaff/engagebot/engagebot/database"
	"github.com/ellavondegurechaff/engagebot/internal/domain/linkfilter"
)

// LoadConfig reads the TOML file at path, lets environment variables (and a
// .env file, when present) override secrets, fills defaults and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err = godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", slog.Any("error", err))
	}
	if err = env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.applyDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log      LogConfig         `toml:"log"`
	Bot      BotConfig         `toml:"bot"`
	DB       database.DBConfig `toml:"db"`
	Ledger   LedgerConfig      `toml:"ledger"`
	Verifier VerifierConfig    `toml:"verifier"`
	Cookies  CookiesConfig     `toml:"cookies"`
	Spaces   SpacesConfig      `toml:"spaces"`
}

type BotConfig struct {
	DevGuilds      []snowflake.ID `toml:"dev_guilds"`
	Token          string         `toml:"token" env:"BOT_TOKEN" validate:"required"`
	GroupChannelID snowflake.ID   `toml:"group_channel_id" env:"GROUP_CHANNEL_ID" validate:"required"`
	GroupLink      string         `toml:"group_link" env:"GROUP_LINK" validate:"omitempty,url"`
	AdminIDs       []snowflake.ID `toml:"admin_ids"`
}

// IsAdmin reports whether id may replace the verifier cookie blob.
func (c BotConfig) IsAdmin(id snowflake.ID) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}

type LogConfig struct {
	Level  slog.Level `toml:"level"`
	Format string     `toml:"format" validate:"omitempty,oneof=text json"`
}

type LedgerConfig struct {
	StartingScore    int    `toml:"starting_score" validate:"gte=0"`
	QueueLimit       int    `toml:"queue_limit" validate:"gte=1,lte=25"`
	LeaderboardLimit int    `toml:"leaderboard_limit" validate:"gte=1,lte=25"`
	LinkRuleVersion  string `toml:"link_rule_version"`
	LinkCacheSize    int    `toml:"link_cache_size" validate:"gte=0"`
}

type VerifierConfig struct {
	Headless       bool   `toml:"headless"`
	UserAgent      string `toml:"user_agent"`
	SettleSeconds  int    `toml:"settle_seconds" validate:"gte=0"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gte=1"`
	MaxConcurrent  int    `toml:"max_concurrent" validate:"gte=1"`
	ChromePath     string `toml:"chrome_path" env:"CHROME_PATH"`
}

func (c VerifierConfig) Settle() time.Duration {
	return time.Duration(c.SettleSeconds) * time.Second
}

func (c VerifierConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type CookiesConfig struct {
	Backend   string `toml:"backend" validate:"oneof=file spaces"`
	Path      string `toml:"path"`
	ObjectKey string `toml:"object_key"`
}

type SpacesConfig struct {
	Key    string `toml:"key" env:"SPACES_KEY" validate:"required_if=Backend spaces"`
	Secret string `toml:"secret" env:"SPACES_SECRET"`
	Region string `toml:"region" env:"SPACES_REGION"`
	Bucket string `toml:"bucket" env:"SPACES_BUCKET"`
	// Backend mirrors cookies.backend so the struct can validate itself.
	Backend string `toml:"-"`
}

func (c *Config) applyDefaults() {
	if c.DB.Driver == "" {
		c.DB.Driver = "postgres"
	}
	if c.DB.Driver == "sqlite" && c.DB.Path == "" {
		c.DB.Path = "engagement.db"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.Ledger.StartingScore == 0 {
		c.Ledger.StartingScore = 5
	}
	if c.Ledger.QueueLimit == 0 {
		c.Ledger.QueueLimit = 7
	}
	if c.Ledger.LeaderboardLimit == 0 {
		c.Ledger.LeaderboardLimit = 5
	}
	if c.Ledger.LinkRuleVersion == "" {
		c.Ledger.LinkRuleVersion = linkfilter.CurrentVersion
	}
	if c.Ledger.LinkCacheSize == 0 {
		c.Ledger.LinkCacheSize = 1024
	}
	if c.Verifier.SettleSeconds == 0 {
		c.Verifier.SettleSeconds = 10
	}
	if c.Verifier.TimeoutSeconds == 0 {
		c.Verifier.TimeoutSeconds = 45
	}
	if c.Verifier.MaxConcurrent == 0 {
		c.Verifier.MaxConcurrent = 2
	}
	if c.Cookies.Backend == "" {
		c.Cookies.Backend = "file"
	}
	if c.Cookies.Path == "" {
		c.Cookies.Path = "cookies.json"
	}
	if c.Cookies.ObjectKey == "" {
		c.Cookies.ObjectKey = "engagebot/cookies.json"
	}
	c.Spaces.Backend = c.Cookies.Backend
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := linkfilter.Lookup(c.Ledger.LinkRuleVersion); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Verifier.SettleSeconds >= c.Verifier.TimeoutSeconds {
		return fmt.Errorf("invalid config: verifier.settle_seconds (%d) must be below verifier.timeout_seconds (%d)",
			c.Verifier.SettleSeconds, c.Verifier.TimeoutSeconds)
	}
	return nil
}
