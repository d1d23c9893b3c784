package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMySQL  = "mysql"
	StoreDriverMemory = "memory"
)

type Config struct {
	App        AppConfig
	HTTP       ServerConfig
	GRPC       ServerConfig
	Store      StoreConfig
	MySQL      MySQLConfig
	Log        LogConfig
	Encryption EncryptionConfig
	Notifier   NotifierConfig
}

type AppConfig struct {
	ServiceName     string
	ShutdownTimeout time.Duration
}

type ServerConfig struct {
	Host string
	Port string
}

type StoreConfig struct {
	Driver string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type EncryptionConfig struct {
	Key  string
	Salt string
}

type NotifierConfig struct {
	MaxAttempts           int
	InitialBackoff        time.Duration
	MaxBackoff            time.Duration
	ConnectTimeout        time.Duration
	ReadTimeout           time.Duration
	Workers               int
	MaxParallelDeliveries int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMySQL))
	mysqlDSN := os.Getenv("MYSQL_DSN")
	switch driver {
	case StoreDriverMySQL:
		if mysqlDSN == "" {
			return nil, errors.New("MYSQL_DSN environment variable is required")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		return nil, errors.New("ENCRYPTION_KEY environment variable is required")
	}
	encryptionSalt := os.Getenv("ENCRYPTION_SALT")
	if encryptionSalt == "" {
		return nil, errors.New("ENCRYPTION_SALT environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName:     getEnv("APP_SERVICE_NAME", "payment-notifier"),
			ShutdownTimeout: getSecondsEnv("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		GRPC: ServerConfig{
			Host: getEnv("GRPC_HOST", "0.0.0.0"),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		Store: StoreConfig{
			Driver: driver,
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getMinutesEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Encryption: EncryptionConfig{
			Key:  encryptionKey,
			Salt: encryptionSalt,
		},
		Notifier: NotifierConfig{
			MaxAttempts:           getIntEnv("NOTIFIER_MAX_ATTEMPTS", 3),
			InitialBackoff:        getMillisecondsEnv("NOTIFIER_INITIAL_BACKOFF_MS", 200*time.Millisecond),
			MaxBackoff:            getMillisecondsEnv("NOTIFIER_MAX_BACKOFF_MS", 2*time.Second),
			ConnectTimeout:        getMillisecondsEnv("NOTIFIER_CONNECT_TIMEOUT_MS", 2*time.Second),
			ReadTimeout:           getMillisecondsEnv("NOTIFIER_READ_TIMEOUT_MS", 3*time.Second),
			Workers:               getIntEnv("NOTIFIER_WORKERS", 16),
			MaxParallelDeliveries: getIntEnv("NOTIFIER_MAX_PARALLEL_DELIVERIES", 8),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	return getDurationEnv(key, time.Minute, defaultValue)
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	return getDurationEnv(key, time.Second, defaultValue)
}

func getMillisecondsEnv(key string, defaultValue time.Duration) time.Duration {
	return getDurationEnv(key, time.Millisecond, defaultValue)
}

func getDurationEnv(key string, unit time.Duration, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * unit
		}
	}
	return defaultValue
}
