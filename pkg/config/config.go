// Файл: pkg/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"

	FeedDriverRedis    = "redis"
	FeedDriverPostgres = "postgres"
)

type AuthConfig struct {
	MaxLoginAttempts int           `yaml:"max_login_attempts"`
	LockoutDuration  time.Duration `yaml:"lockout_duration"`
}

type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StoreConfig описывает документное хранилище. Пустой Driver означает,
// что хранилище не настроено и все операции вернут ошибку конфигурации.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// FeedConfig - межинстансная доставка изменений для подписок.
type FeedConfig struct {
	Driver  string `yaml:"driver"`
	Channel string `yaml:"channel"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Redis  RedisConfig  `yaml:"redis"`
	Feed   FeedConfig   `yaml:"feed"`
	JWT    JWTConfig    `yaml:"jwt"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	cfg := Default()
	if path := os.Getenv("GEARGUARD_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			log.Printf("Предупреждение: не удалось прочитать %s: %v", path, err)
		}
	}
	cfg.applyEnv()
	return cfg
}

// Default возвращает значения по умолчанию без чтения окружения.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Feed: FeedConfig{
			Channel: "gearguard_changes",
		},
		JWT: JWTConfig{
			AccessTokenTTL:  time.Hour * 24,
			RefreshTokenTTL: time.Hour * 24 * 30,
		},
		Auth: AuthConfig{
			MaxLoginAttempts: 5,
			LockoutDuration:  time.Minute * 15,
		},
		Log: LogConfig{
			Level: "debug",
		},
	}
}

// LoadFile накладывает YAML-файл поверх текущих значений.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}

	c.Store.Driver = getEnv("STORE_DRIVER", c.Store.Driver)
	c.Store.DSN = getEnv("DATABASE_URL", c.Store.DSN)

	c.Redis.Address = getEnv("REDIS_ADDRESS", c.Redis.Address)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvAsInt("REDIS_DB", c.Redis.DB)

	c.Feed.Driver = getEnv("FEED_DRIVER", c.Feed.Driver)
	c.Feed.Channel = getEnv("FEED_CHANNEL", c.Feed.Channel)

	c.JWT.SecretKey = getEnv("JWT_SECRET_KEY", c.JWT.SecretKey)

	c.Auth.MaxLoginAttempts = getEnvAsInt("AUTH_MAX_LOGIN_ATTEMPTS", c.Auth.MaxLoginAttempts)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
}

// Validate проверяет настройки хранилища. Ошибка здесь не фатальна:
// сервер стартует и отдаёт сообщение о необходимости настройки.
func (c *Config) Validate() error {
	var missing []string
	switch c.Store.Driver {
	case "":
		missing = append(missing, "STORE_DRIVER")
	case StoreDriverPostgres, StoreDriverSQLite:
		if c.Store.DSN == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return fmt.Errorf("неизвестный драйвер хранилища %q", c.Store.Driver)
	}
	if c.JWT.SecretKey == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}
	if c.Feed.Driver == FeedDriverRedis && c.Redis.Address == "" {
		missing = append(missing, "REDIS_ADDRESS")
	}
	if c.Feed.Driver == FeedDriverPostgres && c.Store.Driver != StoreDriverPostgres {
		return fmt.Errorf("FEED_DRIVER=postgres требует STORE_DRIVER=postgres")
	}
	if len(missing) > 0 {
		return fmt.Errorf("не заданы параметры: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}
