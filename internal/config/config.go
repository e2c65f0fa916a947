package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	GST    GSTConfig
}

// GSTConfig holds regional tax settings shared by every company.
type GSTConfig struct {
	// DisableRoundedTotal makes e-Way Bills report the grand total instead of
	// the rounded total.
	DisableRoundedTotal bool   `mapstructure:"disable_rounded_total"`
	EWayBillVersion     string `mapstructure:"ewaybill_version"`
	// ArchiveEWayBills uploads every generated e-Way Bill file to S3.
	ArchiveEWayBills bool `mapstructure:"archive_ewaybills"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds settings for the company settings cache. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// JWTConfig holds JWT verification settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	Issuer      string        `mapstructure:"issuer"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the GSTKIT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstkit")
	v.SetDefault("db.password", "gstkit_secret")
	v.SetDefault("db.name", "gstkit_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Redis defaults
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "gstkit")
	v.SetDefault("jwt.token_expiry", "1h")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "gstkit-ewaybills")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// GST defaults
	v.SetDefault("gst.disable_rounded_total", false)
	v.SetDefault("gst.ewaybill_version", "1.0.1118")
	v.SetDefault("gst.archive_ewaybills", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "GSTKIT_SERVER_PORT",
		"server.read_timeout":       "GSTKIT_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "GSTKIT_SERVER_WRITE_TIMEOUT",
		"server.environment":        "GSTKIT_SERVER_ENVIRONMENT",
		"db.host":                   "GSTKIT_DB_HOST",
		"db.port":                   "GSTKIT_DB_PORT",
		"db.user":                   "GSTKIT_DB_USER",
		"db.password":               "GSTKIT_DB_PASSWORD",
		"db.name":                   "GSTKIT_DB_NAME",
		"db.sslmode":                "GSTKIT_DB_SSLMODE",
		"db.max_open":               "GSTKIT_DB_MAX_OPEN",
		"db.max_idle":               "GSTKIT_DB_MAX_IDLE",
		"redis.addr":                "GSTKIT_REDIS_ADDR",
		"redis.password":            "GSTKIT_REDIS_PASSWORD",
		"redis.db":                  "GSTKIT_REDIS_DB",
		"redis.ttl":                 "GSTKIT_REDIS_TTL",
		"jwt.secret":                "GSTKIT_JWT_SECRET",
		"jwt.issuer":                "GSTKIT_JWT_ISSUER",
		"jwt.token_expiry":          "GSTKIT_JWT_TOKEN_EXPIRY",
		"s3.region":                 "GSTKIT_S3_REGION",
		"s3.bucket":                 "GSTKIT_S3_BUCKET",
		"s3.endpoint":               "GSTKIT_S3_ENDPOINT",
		"s3.access_key":             "GSTKIT_S3_ACCESS_KEY",
		"s3.secret_key":             "GSTKIT_S3_SECRET_KEY",
		"s3.presign_expiry":         "GSTKIT_S3_PRESIGN_EXPIRY",
		"log.level":                 "GSTKIT_LOG_LEVEL",
		"log.format":                "GSTKIT_LOG_FORMAT",
		"cors.allowed_origins":      "GSTKIT_CORS_ALLOWED_ORIGINS",
		"gst.disable_rounded_total": "GSTKIT_GST_DISABLE_ROUNDED_TOTAL",
		"gst.ewaybill_version":      "GSTKIT_GST_EWAYBILL_VERSION",
		"gst.archive_ewaybills":     "GSTKIT_GST_ARCHIVE_EWAYBILLS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platforms that inject PORT win unless GSTKIT_SERVER_PORT is set explicitly.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTKIT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		TTL:      v.GetDuration("redis.ttl"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		Issuer:      v.GetString("jwt.issuer"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.GST = GSTConfig{
		DisableRoundedTotal: v.GetBool("gst.disable_rounded_total"),
		EWayBillVersion:     v.GetString("gst.ewaybill_version"),
		ArchiveEWayBills:    v.GetBool("gst.archive_ewaybills"),
	}

	return cfg, nil
}
