package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("logging:\n  level: info\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IDs.Length != 20 {
		t.Errorf("ids.length = %d, want 20", cfg.IDs.Length)
	}
	if cfg.Metrics.Namespace != "firemock" {
		t.Errorf("metrics.namespace = %q, want firemock", cfg.Metrics.Namespace)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics must be disabled by default")
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("FIREMOCK_TEST_FIXTURE", "/tmp/db.yaml")

	src := `
logging:
  level: ${FIREMOCK_TEST_LEVEL:-warn}
fixtures:
  path: ${FIREMOCK_TEST_FIXTURE}
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging.level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Fixtures.Path != "/tmp/db.yaml" {
		t.Errorf("fixtures.path = %q", cfg.Fixtures.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Default(), false},
		{"bad level", Config{Logging: LoggingConfig{Level: "loud"}}, true},
		{"id too long", Config{IDs: IDsConfig{Length: 1000}}, true},
		{"bad namespace", Config{Metrics: MetricsConfig{Namespace: "fire-mock"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("logging: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("ids:\n  length: 12\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IDs.Length != 12 {
		t.Errorf("ids.length = %d, want 12", cfg.IDs.Length)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_RepoConfigs(t *testing.T) {
	for _, env := range []string{"local", "test"} {
		t.Run(env, func(t *testing.T) {
			if _, err := Load(env); err != nil {
				t.Fatalf("Load(%q): %v", env, err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
