package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "SECRET_KEY", "DB_PATH", "FRONTEND_URL",
		"YOUTUBE_COOKIES_FILE", "YTDLP_PROXY", "AUDIO_BITRATE",
		"SOCKET_TIMEOUT", "DOWNLOAD_RETRIES", "WORKSPACE_BASE", "APP_ENV",
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.Bitrate != DefaultBitrate {
		t.Errorf("Expected bitrate %d, got %d", DefaultBitrate, cfg.Bitrate)
	}
	if cfg.SocketTimeout != DefaultSocketTimeoutSec {
		t.Errorf("Expected timeout %d, got %d", DefaultSocketTimeoutSec, cfg.SocketTimeout)
	}
	if cfg.Retries != DefaultRetries {
		t.Errorf("Expected retries %d, got %d", DefaultRetries, cfg.Retries)
	}
	if !cfg.Production {
		t.Error("Expected production mode by default")
	}
	if !cfg.UsesDefaultSecret() {
		t.Error("Expected default secret detection")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("AUDIO_BITRATE", "320")
	t.Setenv("SECRET_KEY", "real-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("FRONTEND_URL", "https://front.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
	if cfg.Bitrate != 320 {
		t.Errorf("Expected bitrate 320, got %d", cfg.Bitrate)
	}
	if cfg.Production {
		t.Error("Expected development mode")
	}
	if cfg.UsesDefaultSecret() {
		t.Error("Expected custom secret")
	}

	origins := cfg.AllowedOrigins()
	found := false
	for _, origin := range origins {
		if origin == "https://front.example.com" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected frontend URL in allowed origins, got %v", origins)
	}
}

func TestLoadInvalidBitrate(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUDIO_BITRATE", "16")

	if _, err := Load(); err == nil {
		t.Error("Expected error for out-of-range bitrate, got nil")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "70000")

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestLoadMissingCookiesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_COOKIES_FILE", filepath.Join(t.TempDir(), "missing.txt"))

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing cookies file, got nil")
	}
}

func TestLoadCookiesFilePresent(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte("# Netscape HTTP Cookie File"), 0o600); err != nil {
		t.Fatalf("Failed to write cookies file: %v", err)
	}
	t.Setenv("YOUTUBE_COOKIES_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.CookiesFile != path {
		t.Errorf("Expected cookies file %s, got %s", path, cfg.CookiesFile)
	}
}

func TestLoadNonNumericEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Expected fallback port %d, got %d", DefaultPort, cfg.Port)
	}
}
