package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	_ = os.Unsetenv("MARKET_DB_DRIVER")
	_ = os.Unsetenv("MARKET_HTTP_PORT")
	_ = os.Unsetenv("MARKET_TOKEN_TTL")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "memory" || cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL.Hours() != 24 {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("MARKET_HTTP_PORT", "9191")
	defer func() { _ = os.Unsetenv("MARKET_HTTP_PORT") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 9191 {
		t.Fatalf("http port env override failed, got %d", cfg.HTTPPort)
	}
	if cfg.GetHTTPAddr() != ":9191" {
		t.Fatalf("unexpected addr: %s", cfg.GetHTTPAddr())
	}
}

func TestResolveDefaults_DriverValidation(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "oracle"
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}

	cfg = NewForTesting()
	cfg.DBDriver = "sqlite"
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.SQLitePath == "" {
		t.Fatal("sqlite path default not derived")
	}

	cfg = NewForTesting()
	cfg.DBDriver = "postgres"
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for postgres without DSN")
	}
}

func TestResolveDefaults_TokenSecret(t *testing.T) {
	cfg := NewForTesting()
	cfg.TokenSecret = ""
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.TokenSecret == "" {
		t.Fatal("expected dev fallback secret")
	}

	cfg = NewForTesting()
	cfg.Environment = EnvProduction
	cfg.TokenSecret = ""
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for missing secret in production")
	}
}
