package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadLayersEnvOverBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
server:
  port: "8080"
db:
  host: localhost
  port: 5432
  user: app
`)
	writeFile(t, dir, "production.yaml", `
db:
  host: db.internal
`)

	var cfg testConfig
	if err := Load("production", dir, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.Host != "db.internal" {
		t.Errorf("db.host = %q, want overlay value", cfg.DB.Host)
	}
	// Fields absent from the overlay keep their base values.
	if cfg.DB.Port != 5432 {
		t.Errorf("db.port = %d, want 5432", cfg.DB.Port)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("server.port = %q, want 8080", cfg.Server.Port)
	}
}

func TestLoadMissingOverlayIsFine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
server:
  port: "9090"
`)

	var cfg testConfig
	if err := Load("staging", dir, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("server.port = %q, want 9090", cfg.Server.Port)
	}
}

func TestLoadSubstitutesSecrets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "secrets.env", `
# local secrets
DB_PASS="s3cret"
`)
	writeFile(t, dir, "base.yaml", `
db:
  password: ${DB_PASS}
`)

	var cfg testConfig
	if err := Load("local", dir, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Password != "s3cret" {
		t.Errorf("db.password = %q, want substituted secret", cfg.DB.Password)
	}
}

func TestLoadSubstitutesProcessEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
db:
  user: ${TEST_LOADER_DB_USER}
`)
	t.Setenv("TEST_LOADER_DB_USER", "svc")

	var cfg testConfig
	if err := Load("local", dir, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.User != "svc" {
		t.Errorf("db.user = %q, want env value", cfg.DB.User)
	}
}

func TestLoadFailsWithoutBase(t *testing.T) {
	var cfg testConfig
	if err := Load("local", t.TempDir(), &cfg); err == nil {
		t.Fatal("Load should fail when base.yaml is missing")
	}
}
