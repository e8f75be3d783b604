package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"github.com/youruser/popmerge/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "POPMERGE_BIND", "POPMERGE_PUBLIC_URL", "POPMERGE_LOG_LEVEL", "POPMERGE_LANGUAGE"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if !strings.HasSuffix(resolved, filepath.Join(".config", "popmerge", "config.toml")) {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if diff := cmp.Diff(config.Default(), *cfg); diff != "" {
		t.Fatalf("defaults changed by Load (-want +got):\n%s", diff)
	}
	if cfg.SessionTTL() != time.Hour {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL())
	}
	if cfg.MaxUploadBytes() != 50<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.MaxUploadBytes())
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[server]
bind = "0.0.0.0:9000"
public_url = "http://192.168.1.20:9000/"

[logging]
level = "DEBUG"
format = "json"

[ui]
language = "en"
`)
	t.Setenv("PORT", "9100")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Server.Bind != "0.0.0.0:9100" {
		t.Fatalf("PORT override not applied: %q", cfg.Server.Bind)
	}
	if cfg.Server.PublicURL != "http://192.168.1.20:9000" {
		t.Fatalf("public url not normalized: %q", cfg.Server.PublicURL)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.UI.Language != "en" {
		t.Fatalf("unexpected language %q", cfg.UI.Language)
	}
	if cfg.Merge != config.Default().Merge {
		t.Fatalf("unset section lost its defaults: %+v", cfg.Merge)
	}

	t.Setenv("POPMERGE_BIND", "127.0.0.1:7000")
	t.Setenv("POPMERGE_LANGUAGE", "ja")
	cfg, _, _, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Bind != "127.0.0.1:7000" || cfg.UI.Language != "ja" {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Server, cfg.UI)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"bad bind":      "[server]\nbind = \"nonsense\"\n",
		"bad upload":    "[server]\nmax_upload_mb = 0\n",
		"bad url":       "[server]\npublic_url = \"ftp://example.com\"\n",
		"bad ttl":       "[session]\nttl_minutes = -1\n",
		"bad burst":     "[merge]\nburst = 0\n",
		"bad level":     "[logging]\nlevel = \"loud\"\n",
		"bad format":    "[logging]\nformat = \"xml\"\n",
		"bad language":  "[ui]\nlanguage = \"de\"\n",
		"unknown field": "[canvas]\nwidth = 100\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			if _, _, _, err := config.Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var parsed config.Config
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if diff := cmp.Diff(config.Default(), parsed); diff != "" {
		t.Fatalf("sample config drifted from defaults (-want +got):\n%s", diff)
	}
}
