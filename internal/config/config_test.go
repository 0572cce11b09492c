package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "port: \"9000\"\naudio_dir: /srv/audio\nsession_ttl: 30m\nlog_format: console\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("expected env to win, got port %q", cfg.Port)
	}
	if cfg.AudioDir != "/srv/audio" || cfg.SessionTTL != 30*time.Minute || cfg.LogFormat != "console" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
}

func TestLoadAttachTTL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ATTACH_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AttachTTL != 90*time.Second {
		t.Fatalf("expected 90s, got %v", cfg.AttachTTL)
	}
	if Default().AttachTTL >= Default().SessionTTL {
		t.Fatalf("expected unattached sessions to expire before idle ones")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SESSION_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown log format")
	}

	cfg = Default()
	cfg.AttachTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero attach ttl")
	}

	cfg = Default()
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
