package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Окружения приложения
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config хранит все настройки приложения
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

// AppConfig содержит общие настройки
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	APIPrefix    string        `mapstructure:"api_prefix"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	MigrationsPath string `mapstructure:"migrations_path"`
	// LogLevel: уровень SQL-логов GORM ("silent", "error", "warn", "info")
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig содержит настройки подключения к Redis.
// Redis используется только для счетчиков rate limiting и включается явно.
type RedisConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт).
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// RateLimitConfig содержит настройки ограничения частоты запросов на запись
type RateLimitConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

// CORSConfig содержит настройки CORS для версионированного API
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
	AllowMethods []string `mapstructure:"allow_methods"`
	AllowHeaders []string `mapstructure:"allow_headers"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// IsTest сообщает, запущено ли приложение в тестовом окружении
func (a AppConfig) IsTest() bool {
	return a.Env == EnvTest
}

// IsProduction сообщает, запущено ли приложение в production
func (a AppConfig) IsProduction() bool {
	return a.Env == EnvProduction
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("app.name", "trivia-quiz-api")
	vip.SetDefault("app.env", EnvDevelopment)

	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.read_timeout", 15*time.Second)
	vip.SetDefault("server.write_timeout", 15*time.Second)
	vip.SetDefault("server.api_prefix", "/v1")

	vip.SetDefault("database.host", "127.0.0.1")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.user", "postgres")
	vip.SetDefault("database.password", "")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "file://migrations")
	vip.SetDefault("database.log_level", "warn")

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "127.0.0.1:6379")

	vip.SetDefault("ratelimit.enabled", false)
	vip.SetDefault("ratelimit.max_requests", 60)
	vip.SetDefault("ratelimit.window", time.Minute)

	vip.SetDefault("cors.allow_origins", []string{"*"})
	vip.SetDefault("cors.allow_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	vip.SetDefault("cors.allow_headers", []string{"Content-Type", "Authorization"})

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.format", "console")
}

func bindEnv(vip *viper.Viper) {
	// Привязка для секции App
	vip.BindEnv("app.env", "APP_ENV")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.api_prefix", "SERVER_API_PREFIX")

	// Привязка для секции Database
	vip.BindEnv("database.host", "DB_HOST")
	vip.BindEnv("database.port", "DB_PORT")
	vip.BindEnv("database.user", "DB_USER")
	vip.BindEnv("database.password", "DB_PASSWORD")
	vip.BindEnv("database.dbname", "DB_NAME")
	vip.BindEnv("database.sslmode", "DB_SSLMODE")
	vip.BindEnv("database.migrations_path", "DB_MIGRATIONS_PATH")
	vip.BindEnv("database.log_level", "DB_LOG_LEVEL")

	// Привязка для секции Redis
	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции RateLimit
	vip.BindEnv("ratelimit.enabled", "RATELIMIT_ENABLED")
	vip.BindEnv("ratelimit.max_requests", "RATELIMIT_MAX_REQUESTS")
	vip.BindEnv("ratelimit.window", "RATELIMIT_WINDOW")

	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")

	vip.BindEnv("log.level", "LOG_LEVEL")
	vip.BindEnv("log.format", "LOG_FORMAT")
}

// Load загружает конфигурацию: .env (если есть) -> файл (если есть) -> переменные окружения -> умолчания
func Load(configPath string) (*Config, error) {
	// .env не обязателен; уже заданные переменные окружения он не перезаписывает
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния
	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Списки из переменных окружения приходят одной строкой через запятую
	cfg.Redis.Addrs = splitList(cfg.Redis.Addrs)
	cfg.CORS.AllowOrigins = splitList(cfg.CORS.AllowOrigins)

	normalizeDatabase(&cfg.Database, cfg.App.Env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalizeDatabase подставляет имя базы по окружению и разбирает DB_HOST вида "host:port"
func normalizeDatabase(d *DatabaseConfig, env string) {
	if d.DBName == "" {
		d.DBName = "trivia"
		if env == EnvTest {
			d.DBName = "trivia_test"
		}
	}
	if host, port, err := net.SplitHostPort(d.Host); err == nil {
		d.Host = host
		d.Port = port
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DB_HOST, DB_NAME, DB_USER env vars)")
	}
	if _, err := strconv.Atoi(c.Database.Port); err != nil {
		return fmt.Errorf("invalid database port %q: %w", c.Database.Port, err)
	}
	if !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return fmt.Errorf("server.api_prefix must start with '/', got %q", c.Server.APIPrefix)
	}
	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return fmt.Errorf("rate limiting requires redis (set REDIS_ENABLED=true)")
		}
		if c.RateLimit.MaxRequests < 1 || c.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit settings: max_requests=%d window=%s", c.RateLimit.MaxRequests, c.RateLimit.Window)
		}
	}
	return nil
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
