package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
database:
  backend: "sqlite"
  path: "./data/content.db"
search:
  distance_threshold: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Database.Backend != "sqlite" {
		t.Errorf("backend: got %q", cfg.Database.Backend)
	}
	wantPath := filepath.Join(dir, "data", "content.db")
	if cfg.Database.Path != wantPath {
		t.Errorf("path: got %q, want %q", cfg.Database.Path, wantPath)
	}
	if cfg.Search.DistanceThreshold != 0.5 {
		t.Errorf("distance_threshold: got %v", cfg.Search.DistanceThreshold)
	}
}

func TestLoad_missingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("port: got %d, want 8000", cfg.Server.Port)
	}
	if cfg.Database.Backend != "postgres" {
		t.Errorf("backend: got %q, want postgres", cfg.Database.Backend)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("dimensions: got %d, want 384", cfg.Embedding.Dimensions)
	}
	if cfg.Search.DistanceThreshold != 0.7 {
		t.Errorf("distance_threshold: got %v, want 0.7", cfg.Search.DistanceThreshold)
	}
	if !cfg.Server.StrictStartupOrDefault() {
		t.Error("strict_startup should default to true")
	}
}

func TestLoad_envOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5435")
	t.Setenv("POSTGRES_DB", "content")
	t.Setenv("PORT", "9001")
	t.Setenv("DISTANCE_THRESHOLD", "0.4")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5435 {
		t.Errorf("database override: %+v", cfg.Database)
	}
	if cfg.Database.Name != "content" {
		t.Errorf("db name: got %q", cfg.Database.Name)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("server port: got %d", cfg.Server.Port)
	}
	if cfg.Search.DistanceThreshold != 0.4 {
		t.Errorf("distance_threshold: got %v", cfg.Search.DistanceThreshold)
	}
}

func TestLoad_badYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConnString(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		Name: "db", SSLMode: "disable",
	}
	want := "host=localhost port=5432 user=u password=p dbname=db sslmode=disable"
	if got := d.ConnString(); got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}
}

func TestStrictStartupOrDefault_explicitFalse(t *testing.T) {
	f := false
	s := ServerConfig{StrictStartup: &f}
	if s.StrictStartupOrDefault() {
		t.Error("explicit false should be honored")
	}
}
