package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create temp config file: %v", err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom("", envMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected port %q", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverPostgres || cfg.Storage.DatabaseURL == "" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Fatalf("expected default origins, got %v", cfg.Server.CORSOrigins)
	}
	want := map[string]bool{"PORT": true, "CORS_ORIGINS": true, "STORAGE_DRIVER": true, "DATABASE_URL": true}
	if len(cfg.Defaulted) != len(want) {
		t.Fatalf("expected defaulted %v, got %v", want, cfg.Defaulted)
	}
	for _, k := range cfg.Defaulted {
		if !want[k] {
			t.Fatalf("unexpected defaulted key %q", k)
		}
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	t.Parallel()

	path := createTempConfigFile(t, `
server:
  port: "9000"
  cors_origins: ["https://dreams.example.org"]
storage:
  driver: sqlite
  sqlite_path: /var/lib/dreams/state.db
logging:
  level: debug
auth:
  bcrypt_cost: 12
`)

	cfg, err := LoadFrom(path, envMap(map[string]string{
		"PORT":           "9100",
		"ADMIN_USERNAME": "admin",
		"ADMIN_PASSWORD": "pw",
		"LOG_LEVEL":      "WARN",
	}))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("expected env port, got %q", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://dreams.example.org" {
		t.Errorf("unexpected origins %v", cfg.Server.CORSOrigins)
	}
	if cfg.Storage.Driver != DriverSQLite || cfg.Storage.SQLitePath != "/var/lib/dreams/state.db" {
		t.Errorf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Logging.Level)
	}
	if cfg.Auth.BcryptCost != 12 || cfg.Auth.AdminUsername != "admin" {
		t.Errorf("unexpected auth %+v", cfg.Auth)
	}
	if len(cfg.Defaulted) != 0 {
		t.Errorf("expected no defaulted keys with a config file, got %v", cfg.Defaulted)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{"port not a number", map[string]string{"PORT": "http"}, ErrInvalidPort},
		{"port out of range", map[string]string{"PORT": "70000"}, ErrInvalidPort},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}, ErrInvalidStorageDriver},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, ErrInvalidLogLevel},
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "2"}, ErrInvalidBcryptCost},
		{"bcrypt cost not a number", map[string]string{"BCRYPT_COST": "high"}, ErrInvalidBcryptCost},
		{"admin without password", map[string]string{"ADMIN_USERNAME": "admin"}, ErrAdminPasswordRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFrom("", envMap(tc.env))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFrom_MemoryDriverSkipsDatabaseURL(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom("", envMap(map[string]string{"STORAGE_DRIVER": "Memory"}))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.Storage.Driver)
	}
	for _, k := range cfg.Defaulted {
		if k == "DATABASE_URL" {
			t.Fatalf("DATABASE_URL should not be reported for the memory driver")
		}
	}
}

func TestLoadFrom_BadYAML(t *testing.T) {
	t.Parallel()

	path := createTempConfigFile(t, "server: [unclosed")
	if _, err := LoadFrom(path, envMap(nil)); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"), envMap(nil)); err == nil {
		t.Fatal("expected read error")
	}
}

func TestParseCSV(t *testing.T) {
	t.Parallel()

	got := ParseCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected %v", got)
	}
	if ParseCSV("") != nil {
		t.Fatal("expected nil for empty input")
	}
}
