package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `http:
  port: 8000

database:
  url: ${TEST_HS_SERVER:-http://localhost:8080}
  api_key: ${TEST_HS_API_KEY}

llm:
  api_key: sk-test

search:
  cache_distance: 0.2

logging:
  level: debug
`

// chdir changes to dir for the duration of the test, like t.Chdir
// (which needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func writeConfig(t *testing.T, env, content string) {
	t.Helper()
	chdir(t, t.TempDir())
	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join("config", env+".yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	writeConfig(t, "test", validConfig)
	t.Setenv("TEST_HS_API_KEY", "secret")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 8000 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.URL != "http://localhost:8080" {
		t.Errorf("url = %q, want env default", cfg.Database.URL)
	}
	if cfg.Database.APIKey != "secret" {
		t.Errorf("api_key = %q, want expanded env var", cfg.Database.APIKey)
	}
	if cfg.Search.CacheDistance != 0.2 {
		t.Errorf("cache_distance = %v", cfg.Search.CacheDistance)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfig(t, "test", validConfig)
	t.Setenv("TEST_HS_API_KEY", "secret")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("write_timeout_sec = %d, want 120", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.LLM.Model != "gpt-4" {
		t.Errorf("model = %q, want gpt-4", cfg.LLM.Model)
	}
	if cfg.LLM.TimeoutSec != 60 {
		t.Errorf("llm timeout = %d, want 60", cfg.LLM.TimeoutSec)
	}
	if cfg.Database.TimeoutSec != 30 {
		t.Errorf("db timeout = %d, want 30", cfg.Database.TimeoutSec)
	}
}

func TestLoad_MissingCredentialsIsFatal(t *testing.T) {
	writeConfig(t, "test", validConfig)
	// TEST_HS_API_KEY unset -> database.api_key expands to ""

	_, err := Load("test")
	if err == nil {
		t.Fatal("Load succeeded without store credentials, want error")
	}
	if !strings.Contains(err.Error(), "database.api_key") {
		t.Errorf("err = %v, want database.api_key mentioned", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load("nope"); err == nil {
		t.Error("Load succeeded on missing file, want error")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("GetEnv = %q, want local", env)
	}

	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("GetEnv = %q, want prod", env)
	}
}

func TestValidate_PortRange(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 70000},
		Database: DatabaseConfig{URL: "http://x", APIKey: "k"},
		LLM:      LLMConfig{APIKey: "k"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted out-of-range port")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_HS_EXPAND", "value")

	out := string(expandEnvVars([]byte("a: ${TEST_HS_EXPAND}\nb: ${TEST_HS_UNSET:-fallback}\nc: ${TEST_HS_UNSET}")))
	if !strings.Contains(out, "a: value") {
		t.Errorf("set variable not expanded: %q", out)
	}
	if !strings.Contains(out, "b: fallback") {
		t.Errorf("default not applied: %q", out)
	}
	if !strings.Contains(out, "c: \n") && !strings.HasSuffix(out, "c: ") {
		t.Errorf("unset variable should expand empty: %q", out)
	}
}
