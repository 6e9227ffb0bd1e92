package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("http port = %d, want 8080", cfg.Server.HTTPPort)
	}
	if cfg.Analysis.CacheTTL != time.Hour {
		t.Errorf("cache ttl = %v, want 1h", cfg.Analysis.CacheTTL)
	}
	if cfg.Analysis.MaxBatchSize != 100 {
		t.Errorf("max batch size = %d, want 100", cfg.Analysis.MaxBatchSize)
	}
	if cfg.Database.Enabled || cfg.Redis.Enabled || cfg.NATS.Enabled {
		t.Error("external infrastructure should be disabled by default")
	}
	if cfg.NATS.SubjectPrefix != "scams.detected" {
		t.Errorf("subject prefix = %q", cfg.NATS.SubjectPrefix)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  http_port: 9999
analysis:
  cache_ttl: 10m
auth:
  api_keys:
    - key-one
    - key-two
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.HTTPPort != 9999 {
		t.Errorf("http port = %d, want 9999", cfg.Server.HTTPPort)
	}
	if cfg.Analysis.CacheTTL != 10*time.Minute {
		t.Errorf("cache ttl = %v, want 10m", cfg.Analysis.CacheTTL)
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys[0] != "key-one" {
		t.Errorf("api keys = %v", cfg.Auth.APIKeys)
	}
	// untouched keys keep their defaults
	if cfg.Server.GRPCPort != 9090 {
		t.Errorf("grpc port = %d, want 9090", cfg.Server.GRPCPort)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCAMSHIELD_REDIS_ENABLED", "true")
	t.Setenv("SCAMSHIELD_REDIS_HOST", "cache.internal")

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Host != "cache.internal" {
		t.Errorf("redis = %+v", cfg.Redis)
	}
}

func TestAppConfigIsProduction(t *testing.T) {
	if !(AppConfig{Environment: "Production"}).IsProduction() {
		t.Error("expected production")
	}
	if (AppConfig{Environment: "development"}).IsProduction() {
		t.Error("expected non-production")
	}
}
