package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is returned when no connection string is configured.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL must be set")

type Config struct {
	Port     string
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Argon2   Argon2Config
}

// DatabaseConfig holds the postgres connection string and pool limits
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port for the redis client
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type JWTConfig struct {
	SecretKey   string
	ExpiryHours int
}

// Enabled reports whether a signing secret is configured. Without one no
// session tokens are issued.
func (c JWTConfig) Enabled() bool {
	return c.SecretKey != ""
}

// Expiry returns the token lifetime
func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

// Argon2Config tunes the password hashing cost.
type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

// keys mirror the environment variable names so values from a .env file and
// from the process environment resolve to the same entry.
var keys = []string{
	"PORT",
	"DATABASE_URL",
	"DATABASE_MAX_OPEN_CONNS",
	"DATABASE_MAX_IDLE_CONNS",
	"DATABASE_CONN_MAX_LIFETIME",
	"REDIS_HOST",
	"REDIS_PORT",
	"REDIS_PASSWORD",
	"REDIS_DB",
	"JWT_SECRET_KEY",
	"JWT_EXPIRY_HOURS",
	"ARGON2_TIME",
	"ARGON2_MEMORY",
	"ARGON2_THREADS",
	"ARGON2_KEY_LENGTH",
	"ARGON2_SALT_LENGTH",
}

// Load reads configuration from an optional .env file and the environment.
// Environment variables override values from the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for _, key := range keys {
		v.BindEnv(strings.ToLower(key), key)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("[CONFIG] Config file not found, using environment: %v", err)
	}

	cfg := &Config{
		Port: v.GetString("port"),
		Database: DatabaseConfig{
			URL:             v.GetString("database_url"),
			MaxOpenConns:    v.GetInt("database_max_open_conns"),
			MaxIdleConns:    v.GetInt("database_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database_conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis_host"),
			Port:     v.GetString("redis_port"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		JWT: JWTConfig{
			SecretKey:   v.GetString("jwt_secret_key"),
			ExpiryHours: v.GetInt("jwt_expiry_hours"),
		},
		Argon2: Argon2Config{
			Time:       v.GetUint32("argon2_time"),
			Memory:     v.GetUint32("argon2_memory"),
			Threads:    uint8(v.GetUint("argon2_threads")),
			KeyLength:  v.GetUint32("argon2_key_length"),
			SaltLength: v.GetUint32("argon2_salt_length"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("database_max_open_conns", 25)
	v.SetDefault("database_max_idle_conns", 5)
	v.SetDefault("database_conn_max_lifetime", 5*time.Minute)
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("jwt_expiry_hours", 24)
	v.SetDefault("argon2_time", 1)
	v.SetDefault("argon2_memory", 64*1024)
	v.SetDefault("argon2_threads", 4)
	v.SetDefault("argon2_key_length", 32)
	v.SetDefault("argon2_salt_length", 16)
}
