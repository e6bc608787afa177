package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/thesrcielos/TournamentHub/internal/address"
)

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Hub      HubConfig
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	TLS      bool
}

type ServerConfig struct {
	Port      int
	JWTSecret string
}

// HubConfig holds the identities and storage layout of the tournament hub.
type HubConfig struct {
	Owner         string
	Escrow        string
	KeyPrefix     string
	TokenDecimals int
	StoreDriver   string
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("File .env not found, using system values")
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "tournament_hub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Username: getEnv("REDIS_USERNAME", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TLS:      getEnv("REDIS_TLS", "false") == "true",
		},
		Server: ServerConfig{
			Port:      getEnvAsInt("SERVER_PORT", 8080),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Hub: HubConfig{
			Owner:         getEnv("HUB_OWNER", ""),
			Escrow:        getEnv("HUB_ESCROW", ""),
			KeyPrefix:     getEnv("HUB_KEY_PREFIX", "hub:"),
			TokenDecimals: getEnvAsInt("TOKEN_DECIMALS", 18),
			StoreDriver:   getEnv("STORE_DRIVER", DriverRedis),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	owner, err := address.Parse(c.Hub.Owner)
	if err != nil {
		return fmt.Errorf("HUB_OWNER: %w", err)
	}
	escrow, err := address.Parse(c.Hub.Escrow)
	if err != nil {
		return fmt.Errorf("HUB_ESCROW: %w", err)
	}
	if owner == escrow {
		return errors.New("HUB_OWNER and HUB_ESCROW must differ")
	}
	if c.Hub.StoreDriver != DriverRedis && c.Hub.StoreDriver != DriverMemory {
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Hub.StoreDriver)
	}
	if c.Hub.TokenDecimals < 0 {
		return errors.New("TOKEN_DECIMALS must not be negative")
	}
	return nil
}

func (c *Config) OwnerAddress() address.Address {
	return address.MustParse(c.Hub.Owner)
}

func (c *Config) EscrowAddress() address.Address {
	return address.MustParse(c.Hub.Escrow)
}

// GetDSN returns the PostgreSQL DSN
func (c *Config) GetDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
