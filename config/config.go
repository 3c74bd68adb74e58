package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all settings. Every key can come from the environment, a
// .env file or config.yaml, in that order of precedence.
type Config struct {
	Env             string `mapstructure:"APP_ENV"`
	Port            string `mapstructure:"PORT"`
	APIPrefix       string `mapstructure:"API_PREFIX"`
	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
	RateLimitPerMin int    `mapstructure:"RATE_LIMIT_PER_MIN"`

	Database DatabaseConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"DB_DRIVER"`
	MySQLURL    string `mapstructure:"MYSQL_URL"`
	URL         string `mapstructure:"DATABASE_URL"`
	User        string `mapstructure:"DB_USER"`
	Password    string `mapstructure:"DB_PASS"`
	Host        string `mapstructure:"DB_HOST"`
	Port        string `mapstructure:"DB_PORT"`
	Name        string `mapstructure:"DB_NAME"`
	SSLMode     string `mapstructure:"DB_SSLMODE"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`
	AutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`
	Seed        bool   `mapstructure:"DB_SEED"`
}

type RedisConfig struct {
	Addr            string `mapstructure:"REDIS_ADDR"`
	Password        string `mapstructure:"REDIS_PASSWORD"`
	DB              int    `mapstructure:"REDIS_DB"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`
}

var defaults = map[string]any{
	"APP_ENV":            "development",
	"PORT":               "8080",
	"API_PREFIX":         "/api",
	"CORS_ORIGINS":       "*",
	"RATE_LIMIT_PER_MIN": 600,

	"DB_DRIVER":       DriverMySQL,
	"MYSQL_URL":       "",
	"DATABASE_URL":    "",
	"DB_USER":         "root",
	"DB_PASS":         "",
	"DB_HOST":         "127.0.0.1",
	"DB_PORT":         "",
	"DB_NAME":         "room_booking",
	"DB_SSLMODE":      "disable",
	"SQLITE_PATH":     "room_booking.db",
	"DB_AUTO_MIGRATE": true,
	"DB_SEED":         false,

	"REDIS_ADDR":        "",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"CACHE_TTL_SECONDS": 60,
}

// Load reads .env (optional), then config.yaml from the given directories
// (optional), then the environment.
func Load(configPaths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{".", "./config"}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins splits CORS_ORIGINS; an empty list means any origin.
func (c *Config) AllowedOrigins() []string {
	raw := strings.TrimSpace(c.CORSOrigins)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
