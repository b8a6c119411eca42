package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mymark/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadUsesDefaultsWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to be reported")
	}
	if resolved == "" {
		t.Fatal("expected resolved path even when file is missing")
	}
	if cfg.Feed.Source != "demo" {
		t.Fatalf("expected demo feed default, got %q", cfg.Feed.Source)
	}
	if cfg.Feed.DemoCount != 8 {
		t.Fatalf("expected default demo count, got %d", cfg.Feed.DemoCount)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := writeConfig(t, `
[feed]
source = "Demo"
demo_count = 3

[identity]
allowed_users = [" Casey ", "casey", "", "ROBIN"]

[logging]
format = "JSON"
level = "Debug"
`)

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Feed.Source != "demo" || cfg.Feed.DemoCount != 3 {
		t.Fatalf("unexpected feed config: %+v", cfg.Feed)
	}
	want := []string{"casey", "robin"}
	if len(cfg.Identity.AllowedUsers) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.Identity.AllowedUsers)
	}
	for i, user := range want {
		if cfg.Identity.AllowedUsers[i] != user {
			t.Fatalf("expected %v, got %v", want, cfg.Identity.AllowedUsers)
		}
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsFileSourceWithoutPath(t *testing.T) {
	path := writeConfig(t, `
[feed]
source = "file"
`)

	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "feed.file") {
		t.Fatalf("expected feed.file validation error, got %v", err)
	}
}

func TestLoadRejectsUnknownFeedSource(t *testing.T) {
	path := writeConfig(t, `
[feed]
source = "scraper"
`)

	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "feed.source") {
		t.Fatalf("expected feed.source validation error, got %v", err)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "verbose"
`)

	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("expected logging.level validation error, got %v", err)
	}
}

func TestNtfyTopicEnvFallback(t *testing.T) {
	t.Setenv("MYMARK_NTFY_TOPIC", "https://ntfy.sh/mymark-test")
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Notifications.NtfyTopic != "https://ntfy.sh/mymark-test" {
		t.Fatalf("expected env fallback topic, got %q", cfg.Notifications.NtfyTopic)
	}
}

func TestExpandPathResolvesTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := config.ExpandPath("~/mymark")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if got != filepath.Join(home, "mymark") {
		t.Fatalf("expected %q, got %q", filepath.Join(home, "mymark"), got)
	}
}

func TestCreateSampleWritesParsableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample config to load, exists=%v err=%v", exists, err)
	}
}
