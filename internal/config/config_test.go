package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Environment != "development" {
		t.Errorf("environment = %q", cfg.App.Environment)
	}
	if cfg.Server.Port != 8080 || cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Database.SSLMode != "require" {
		t.Errorf("sslmode = %q", cfg.Database.SSLMode)
	}
	if cfg.JWT.Issuer != "ehospital-auth" {
		t.Errorf("issuer = %q", cfg.JWT.Issuer)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("TRACING_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Database.MaxOpenConns != 50 {
		t.Errorf("max open conns = %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Tracing.Enabled {
		t.Error("tracing should be disabled")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("err = %v, want JWT_SECRET complaint", err)
	}
}

func TestLoadProductionRules(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_SSLMODE", "disable")

	_, err := Load()
	if err == nil {
		t.Fatal("Load should fail for insecure production config")
	}
	for _, want := range []string{"at least 32 characters", "DB_PASSWORD", "DB_SSLMODE"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Address(); got != "127.0.0.1:8080" {
		t.Errorf("Address() = %q", got)
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, Name: "medications", User: "app",
		Password: "secret", SSLMode: "require",
	}
	dsn := d.DSN()
	for _, want := range []string{"host=db", "dbname=medications", "sslmode=require"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN %q missing %q", dsn, want)
		}
	}
}
