package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// TTL кэша (секунды): обычные выборки и дорогие агрегаты
	CacheTTL          int `mapstructure:"CACHE_TTL"`
	CacheTTLDashboard int `mapstructure:"CACHE_TTL_DASHBOARD"`

	// --- Хранилище вложений ---
	StorageDriver string `mapstructure:"STORAGE_DRIVER"` // local | s3
	UploadDir     string `mapstructure:"UPLOAD_DIR"`

	// --- S3 (для STORAGE_DRIVER=s3) ---
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`

	// --- Auth ---
	AuthJWTSecret   string        `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer      string        `mapstructure:"AUTH_ISSUER"`
	AuthTokenTTLRaw string        `mapstructure:"AUTH_TOKEN_TTL"`
	AuthTokenTTL    time.Duration `mapstructure:"-"`
}

// String реализует интерфейс Stringer (секреты маскируем)
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))
	writeMasked(&sb, "DBPassword", c.DBPassword)

	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))
	writeMasked(&sb, "RedisPassword", c.RedisPassword)

	sb.WriteString(fmt.Sprintf("  CacheTTL: %ds\n", c.CacheTTL))
	sb.WriteString(fmt.Sprintf("  CacheTTLDashboard: %ds\n", c.CacheTTLDashboard))

	sb.WriteString(fmt.Sprintf("  StorageDriver: %s\n", c.StorageDriver))
	sb.WriteString(fmt.Sprintf("  UploadDir: %s\n", c.UploadDir))
	sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	writeMasked(&sb, "S3AccessKey", c.S3AccessKey)
	writeMasked(&sb, "S3SecretKey", c.S3SecretKey)
	sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
	sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))

	writeMasked(&sb, "AuthJWTSecret", c.AuthJWTSecret)
	sb.WriteString(fmt.Sprintf("  AuthIssuer: %s\n", c.AuthIssuer))
	sb.WriteString(fmt.Sprintf("  AuthTokenTTL: %s\n", c.AuthTokenTTL))

	return sb.String()
}

func writeMasked(sb *strings.Builder, name, val string) {
	if val != "" {
		sb.WriteString(fmt.Sprintf("  %s: ********\n", name))
	} else {
		sb.WriteString(fmt.Sprintf("  %s: (empty)\n", name))
	}
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// .env — только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	keys := []string{
		"APP_ENV", "APP_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SCHEME",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"CACHE_TTL", "CACHE_TTL_DASHBOARD",
		"STORAGE_DRIVER", "UPLOAD_DIR",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_USE_SSL", "S3_PATH_STYLE",
		"AUTH_JWT_SECRET", "AUTH_ISSUER", "AUTH_TOKEN_TTL",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.applyDefaults()

	if cfg.AuthTokenTTLRaw != "" {
		d, err := time.ParseDuration(cfg.AuthTokenTTLRaw)
		if err != nil {
			return nil, fmt.Errorf("bad AUTH_TOKEN_TTL: %w", err)
		}
		cfg.AuthTokenTTL = d
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AppPort == "" {
		c.AppPort = ":8080"
	}
	if c.DBScheme == "" {
		c.DBScheme = "public"
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 60
	}
	if c.CacheTTLDashboard <= 0 {
		c.CacheTTLDashboard = 300
	}
	if c.StorageDriver == "" {
		c.StorageDriver = "local"
	}
	if c.UploadDir == "" {
		c.UploadDir = "./uploads"
	}
	if c.AuthIssuer == "" {
		c.AuthIssuer = "eapp-portal"
	}
	if c.AuthTokenTTL == 0 {
		c.AuthTokenTTL = 24 * time.Hour
	}
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
