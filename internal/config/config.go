// backend-go/internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Rules    RulesConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConcurrency int64
}

// DSN returns a lib/pq style connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns a postgres:// connection url, as accepted by pgx.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type AppConfig struct {
	DataDir          string
	StoreDriver      string
	SeedDemoData     bool
	WeatherTableFile string
	DefaultWeather   string
	LogLevel         string
	LogFile          string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

// StorageConfig points at an S3-compatible bucket for generated reports
type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

// RulesConfig holds the stock classification knobs
type RulesConfig struct {
	CriticalDays float64
	LowDays      float64
	FloorDays    bool
	LowStockPct  float64
}

var (
	once     sync.Once
	instance *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "kopik")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONCURRENCY", 10)
	v.SetDefault("APP_DATA_DIR", "./data/output")
	v.SetDefault("APP_STORE_DRIVER", DriverMemory)
	v.SetDefault("APP_SEED_DEMO_DATA", true)
	v.SetDefault("APP_WEATHER_TABLE_FILE", "")
	v.SetDefault("APP_DEFAULT_WEATHER", "sunny")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)
	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "kopik-reports")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("STORAGE_PREFIX", "kopik")
	v.SetDefault("RULES_CRITICAL_DAYS", 2)
	v.SetDefault("RULES_LOW_DAYS", 5)
	v.SetDefault("RULES_FLOOR_DAYS", false)
	v.SetDefault("RULES_LOW_STOCK_PCT", 0.25)
}

// Load reads configuration once from .env and the environment.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		cfg, err := FromViper(viper.GetViper())
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		ensureDir(cfg.App.DataDir)
		instance = cfg
	})

	return instance
}

// FromViper builds and validates a Config from a viper instance, applying defaults.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			DBName:         v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			MaxConcurrency: v.GetInt64("DB_MAX_CONCURRENCY"),
		},
		App: AppConfig{
			DataDir:          v.GetString("APP_DATA_DIR"),
			StoreDriver:      strings.ToLower(strings.TrimSpace(v.GetString("APP_STORE_DRIVER"))),
			SeedDemoData:     v.GetBool("APP_SEED_DEMO_DATA"),
			WeatherTableFile: v.GetString("APP_WEATHER_TABLE_FILE"),
			DefaultWeather:   strings.ToLower(v.GetString("APP_DEFAULT_WEATHER")),
			LogLevel:         v.GetString("LOG_LEVEL"),
			LogFile:          v.GetString("LOG_FILE"),
		},
		Cache: CacheConfig{
			Enabled:             v.GetBool("CACHE_ENABLED"),
			RedisURL:            v.GetString("REDIS_URL"),
			RedisHost:           v.GetString("REDIS_HOST"),
			RedisPort:           v.GetString("REDIS_PORT"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			DashboardTTLSeconds: v.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
			Prefix:    v.GetString("STORAGE_PREFIX"),
		},
		Rules: RulesConfig{
			CriticalDays: v.GetFloat64("RULES_CRITICAL_DAYS"),
			LowDays:      v.GetFloat64("RULES_LOW_DAYS"),
			FloorDays:    v.GetBool("RULES_FLOOR_DAYS"),
			LowStockPct:  v.GetFloat64("RULES_LOW_STOCK_PCT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late or silently.
func (c *Config) Validate() error {
	switch c.App.StoreDriver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.App.StoreDriver, DriverMemory, DriverPostgres)
	}
	if c.Rules.CriticalDays < 0 || c.Rules.LowDays < 0 {
		return fmt.Errorf("rule thresholds must not be negative")
	}
	if c.Rules.CriticalDays > c.Rules.LowDays {
		return fmt.Errorf("critical threshold %.2f exceeds low threshold %.2f", c.Rules.CriticalDays, c.Rules.LowDays)
	}
	if c.Rules.LowStockPct < 0 {
		return fmt.Errorf("low stock pct must not be negative")
	}
	if c.Storage.Enabled && (c.Storage.Endpoint == "" || c.Storage.Bucket == "") {
		return fmt.Errorf("storage enabled but endpoint or bucket missing")
	}
	return nil
}

func ensureDir(dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
