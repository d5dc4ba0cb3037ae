package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Venue scheduling.
	OpeningHour     int `mapstructure:"OPENING_HOUR"`
	ClosingHour     int `mapstructure:"CLOSING_HOUR"`
	HorizonDays     int `mapstructure:"HORIZON_DAYS"`
	SuggestionLimit int `mapstructure:"SUGGESTION_LIMIT"`

	BookingLockTTL   time.Duration `mapstructure:"BOOKING_LOCK_TTL"`
	BlackoutCacheTTL time.Duration `mapstructure:"BLACKOUT_CACHE_TTL"`
	FinishSweepSpec  string        `mapstructure:"FINISH_SWEEP_SPEC"`
}

var AppConfig Config

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "campusvenue")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_LOCK_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("OPENING_HOUR", 8)
	v.SetDefault("CLOSING_HOUR", 19)
	v.SetDefault("HORIZON_DAYS", 30)
	v.SetDefault("SUGGESTION_LIMIT", 4)
	v.SetDefault("BOOKING_LOCK_TTL", "10s")
	v.SetDefault("BLACKOUT_CACHE_TTL", "5m")
	v.SetDefault("FINISH_SWEEP_SPEC", "@every 15m")
}

// Load reads configuration from v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig() {
	v := viper.GetViper()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	cfg, err := Load(v)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Validate rejects settings the scheduling engine cannot work with.
func (c Config) Validate() error {
	if c.OpeningHour < 0 || c.ClosingHour > 24 || c.OpeningHour >= c.ClosingHour {
		return fmt.Errorf("invalid operating window %d:00-%d:00", c.OpeningHour, c.ClosingHour)
	}
	if c.HorizonDays <= 0 {
		return fmt.Errorf("HORIZON_DAYS must be positive (got %d)", c.HorizonDays)
	}
	if c.SuggestionLimit <= 0 {
		return fmt.Errorf("SUGGESTION_LIMIT must be positive (got %d)", c.SuggestionLimit)
	}
	if c.BookingLockTTL <= 0 {
		return fmt.Errorf("BOOKING_LOCK_TTL must be positive (got %s)", c.BookingLockTTL)
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
