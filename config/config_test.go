package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func setEncryptionEnv(t *testing.T) {
	t.Helper()
	setEnv(t, "ENCRYPTION_KEY", "test-secret")
	setEnv(t, "ENCRYPTION_SALT", "5c0744940b5c369b")
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	setEncryptionEnv(t)
	unsetEnv(t, "STORE_DRIVER")
	unsetEnv(t, "MYSQL_DSN")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing MYSQL_DSN")
	}
}

func TestLoadMemoryDriverDoesNotRequireDSN(t *testing.T) {
	setEncryptionEnv(t)
	setEnv(t, "STORE_DRIVER", "memory")
	unsetEnv(t, "MYSQL_DSN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Fatalf("unexpected store driver: %s", cfg.Store.Driver)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setEncryptionEnv(t)
	setEnv(t, "STORE_DRIVER", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported store driver")
	}
}

func TestLoadRequiresEncryptionSettings(t *testing.T) {
	setEnv(t, "STORE_DRIVER", "memory")
	unsetEnv(t, "ENCRYPTION_KEY")
	setEnv(t, "ENCRYPTION_SALT", "5c0744940b5c369b")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing ENCRYPTION_KEY")
	}

	setEnv(t, "ENCRYPTION_KEY", "test-secret")
	unsetEnv(t, "ENCRYPTION_SALT")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing ENCRYPTION_SALT")
	}
}

func TestLoadNotifierDefaults(t *testing.T) {
	setEncryptionEnv(t)
	setEnv(t, "STORE_DRIVER", "memory")
	for _, key := range []string{
		"NOTIFIER_MAX_ATTEMPTS",
		"NOTIFIER_INITIAL_BACKOFF_MS",
		"NOTIFIER_MAX_BACKOFF_MS",
		"NOTIFIER_CONNECT_TIMEOUT_MS",
		"NOTIFIER_READ_TIMEOUT_MS",
	} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	n := cfg.Notifier
	if n.MaxAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", n.MaxAttempts)
	}
	if n.InitialBackoff != 200*time.Millisecond || n.MaxBackoff != 2*time.Second {
		t.Fatalf("unexpected backoff: initial=%v max=%v", n.InitialBackoff, n.MaxBackoff)
	}
	if n.ConnectTimeout != 2*time.Second || n.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected timeouts: connect=%v read=%v", n.ConnectTimeout, n.ReadTimeout)
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	setEncryptionEnv(t)
	setEnv(t, "STORE_DRIVER", "MySQL")
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/payments?parseTime=true")
	setEnv(t, "APP_SERVICE_NAME", "notifier-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "GRPC_PORT", "9191")
	setEnv(t, "MYSQL_MAX_OPEN_CONNS", "20")
	setEnv(t, "MYSQL_MAX_IDLE_CONNS", "8")
	setEnv(t, "MYSQL_CONN_MAX_LIFETIME_MINUTES", "40")
	setEnv(t, "NOTIFIER_MAX_ATTEMPTS", "5")
	setEnv(t, "NOTIFIER_INITIAL_BACKOFF_MS", "50")
	setEnv(t, "NOTIFIER_WORKERS", "4")
	setEnv(t, "SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "notifier-test" {
		t.Fatalf("unexpected app service name: %s", cfg.App.ServiceName)
	}
	if cfg.App.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", cfg.App.ShutdownTimeout)
	}
	if cfg.Store.Driver != StoreDriverMySQL {
		t.Fatalf("expected normalized mysql driver, got %s", cfg.Store.Driver)
	}
	if cfg.HTTP.Port != "8181" || cfg.GRPC.Port != "9191" {
		t.Fatalf("unexpected ports: http=%s grpc=%s", cfg.HTTP.Port, cfg.GRPC.Port)
	}
	if cfg.MySQL.MaxOpenConns != 20 || cfg.MySQL.MaxIdleConns != 8 {
		t.Fatalf("unexpected mysql pool config: %+v", cfg.MySQL)
	}
	if cfg.MySQL.ConnMaxLifetime != 40*time.Minute {
		t.Fatalf("unexpected mysql lifetime: %v", cfg.MySQL.ConnMaxLifetime)
	}
	if cfg.Notifier.MaxAttempts != 5 {
		t.Fatalf("unexpected notifier max attempts: %d", cfg.Notifier.MaxAttempts)
	}
	if cfg.Notifier.InitialBackoff != 50*time.Millisecond {
		t.Fatalf("unexpected notifier initial backoff: %v", cfg.Notifier.InitialBackoff)
	}
	if cfg.Notifier.Workers != 4 {
		t.Fatalf("unexpected notifier workers: %d", cfg.Notifier.Workers)
	}
}
