package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "./config.yaml"
	// DefaultMaxRequestBytes ограничивает тело одного POST-запроса (1 GiB).
	DefaultMaxRequestBytes int64 = 1 << 30
)

type Config struct {
	Host            string `yaml:"host" json:"host" env:"HOST"`
	Port            int    `yaml:"port" json:"port" env:"PORT"`
	ServiceName     string `yaml:"service_name" json:"service_name" env:"SERVICE_NAME"`
	UploadsDir      string `yaml:"uploads_dir" json:"uploads_dir" env:"UPLOADS_DIR"`
	KeysSource      string `yaml:"keys_source" json:"-" env:"KEYS_SOURCE"`
	MaxRequestBytes int64  `yaml:"max_request_bytes" json:"max_request_bytes" env:"MAX_REQUEST_BYTES"`
	LogLevel        string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
	LogFormat       string `yaml:"log_format" json:"log_format" env:"LOG_FORMAT"`
	LogFile         string `yaml:"log_file" json:"log_file" env:"LOG_FILE"`
	MetricsEnabled  bool   `yaml:"metrics_enabled" json:"metrics_enabled" env:"METRICS_ENABLED"`
}

// Default возвращает конфигурацию, с которой сервис поднимается без config.yaml.
func Default() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ServiceName:     "upload-lite",
		UploadsDir:      "./uploads",
		KeysSource:      "keys.json",
		MaxRequestBytes: DefaultMaxRequestBytes,
		LogLevel:        "info",
		LogFormat:       "text",
		LogFile:         "upload_lite.log",
		MetricsEnabled:  true,
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствие config.yaml по умолчанию не ошибка; явно указанный CONFIG_PATH обязан существовать.
func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	c := Default()

	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || strings.TrimSpace(path) == "" {
		path, explicit = defaultConfigPath, false
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// ENV override
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate проверяет значения, без которых сервис не должен стартовать.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is not a valid port", c.Port)
	}
	if strings.TrimSpace(c.UploadsDir) == "" {
		return fmt.Errorf("uploads_dir is not configured")
	}
	if strings.TrimSpace(c.KeysSource) == "" {
		return fmt.Errorf("keys_source is not configured")
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("max_request_bytes must be > 0")
	}

	return nil
}

// ListenAddr собирает адрес вида host:port.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
