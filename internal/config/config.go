package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, если конфигурация непригодна для запуска
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	Relay         RelayConfig         `toml:"relay"`
	Webhook       WebhookConfig       `toml:"webhook"`
	Redis         RedisConfig         `toml:"redis"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Notifications NotificationsConfig `toml:"notifications"`
	Studio        StudioConfig        `toml:"studio"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File     string `toml:"file"`
	Level    string `toml:"level"`
	Encoding string `toml:"encoding"` // json | console
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig параметры выдачи JWT
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// TokenTTL время жизни токена
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// RelayConfig адреса ретрансляторов чат-уведомлений (timeout в секундах)
type RelayConfig struct {
	TelegramURL string `toml:"telegram_url"`
	WhatsAppURL string `toml:"whatsapp_url"`
	Timeout     int    `toml:"timeout"`
}

// WebhookConfig параметры входящих вебхуков
type WebhookConfig struct {
	Secret       string `toml:"secret"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig token bucket для публичных вебхуков
type RateLimitConfig struct {
	Enabled         bool   `toml:"enabled"`
	Capacity        int    `toml:"capacity"`
	RefillTokens    int    `toml:"refill_tokens"`
	RefillIntervalS int    `toml:"refill_interval_seconds"`
	Prefix          string `toml:"prefix"`
	// TrustedProxies IP или CIDR обратных прокси; только от них принимается X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// RefillInterval период пополнения бакета
func (r RateLimitConfig) RefillInterval() time.Duration {
	return time.Duration(r.RefillIntervalS) * time.Second
}

// NotificationsConfig получатели уведомлений о записях
type NotificationsConfig struct {
	DefaultChannel   string `toml:"default_channel"` // telegram | whatsapp
	TelegramChatID   string `toml:"telegram_chat_id"`
	WhatsAppNumber   string `toml:"whatsapp_number"`
	NotifyOnCreate   bool   `toml:"notify_on_create"`
	DailySummaryHour int    `toml:"daily_summary_hour"` // -1 отключает сводку по расписанию
}

// StudioConfig параметры студии
type StudioConfig struct {
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"`
	Currency string `toml:"currency"`
}

// Location часовой пояс студии; при ошибке - UTC
func (s StudioConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load читает .env (если есть), TOML-файл, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация для локального запуска
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "studio",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level:    "info",
			Encoding: "console",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc_tattoo_studio",
		},
		Auth: AuthConfig{
			TokenTTLHours: 12,
		},
		Relay: RelayConfig{
			Timeout: 10,
		},
		Webhook: WebhookConfig{
			MaxBodyBytes: 10 << 20,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			Capacity:        30,
			RefillTokens:    1,
			RefillIntervalS: 2,
			Prefix:          "rl",
		},
		Notifications: NotificationsConfig{
			DefaultChannel:   "telegram",
			DailySummaryHour: 9,
		},
		Studio: StudioConfig{
			Name:     "Tattoo Studio",
			Timezone: "Europe/Athens",
			Currency: "€",
		},
	}
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Database.Password, "DB_PASSWORD")
	setFromEnv(&c.Database.Host, "DB_HOST")
	setFromEnv(&c.Auth.JWTSecret, "JWT_SECRET")
	setFromEnv(&c.Relay.TelegramURL, "TELEGRAM_RELAY_URL")
	setFromEnv(&c.Relay.WhatsAppURL, "WHATSAPP_RELAY_URL")
	setFromEnv(&c.Webhook.Secret, "WEBHOOK_SECRET")
	setFromEnv(&c.Redis.Addr, "REDIS_ADDR")
	setFromEnv(&c.Redis.Password, "REDIS_PASSWORD")
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = def.Server.HTTPPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = def.Metrics.ServiceName
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = def.Auth.TokenTTLHours
	}
	if c.Relay.Timeout == 0 {
		c.Relay.Timeout = def.Relay.Timeout
	}
	if c.Webhook.MaxBodyBytes == 0 {
		c.Webhook.MaxBodyBytes = def.Webhook.MaxBodyBytes
	}
	if c.RateLimit.Prefix == "" {
		c.RateLimit.Prefix = def.RateLimit.Prefix
	}
	if c.Notifications.DefaultChannel == "" {
		c.Notifications.DefaultChannel = def.Notifications.DefaultChannel
	}
	if c.Studio.Timezone == "" {
		c.Studio.Timezone = def.Studio.Timezone
	}
	if c.Studio.Currency == "" {
		c.Studio.Currency = def.Studio.Currency
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database host, dbname and user are required")
	}
	if c.Database.Port <= 0 {
		problems = append(problems, "database port must be positive")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		problems = append(problems, "auth.jwt_secret (or JWT_SECRET) is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}
	if c.Relay.Timeout <= 0 {
		problems = append(problems, "relay.timeout must be positive")
	}
	switch c.Notifications.DefaultChannel {
	case "telegram", "whatsapp":
	default:
		problems = append(problems, "notifications.default_channel must be telegram or whatsapp")
	}
	if c.Notifications.DailySummaryHour < -1 || c.Notifications.DailySummaryHour > 23 {
		problems = append(problems, "notifications.daily_summary_hour must be between -1 and 23")
	}
	if _, err := time.LoadLocation(c.Studio.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("studio.timezone %q is unknown", c.Studio.Timezone))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Capacity < 1 || c.RateLimit.RefillTokens < 1 || c.RateLimit.RefillIntervalS < 1) {
		problems = append(problems, "rate_limit capacity, refill_tokens and refill_interval_seconds must be >= 1")
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !isIPOrCIDR(proxy) {
			problems = append(problems, fmt.Sprintf("rate_limit.trusted_proxies entry %q is not an IP or CIDR", proxy))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func isIPOrCIDR(s string) bool {
	s = strings.TrimSpace(s)
	if _, _, err := net.ParseCIDR(s); err == nil {
		return true
	}
	return net.ParseIP(s) != nil
}
