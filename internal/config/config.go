// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default values
const (
	DefaultPort             = 8080
	DefaultDBPath           = "tunedrop.db"
	DefaultBitrate          = 192
	DefaultSocketTimeoutSec = 60
	DefaultRetries          = 3

	// DefaultSecretKey is only acceptable for local development
	DefaultSecretKey = "clave-insegura-solo-desarrollo"
)

// Bitrate bounds in kbps
const (
	MinBitrate = 64
	MaxBitrate = 320
)

// Local development origins always allowed by CORS
var devOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
}

// Config holds all server settings.
type Config struct {
	Port          int
	SecretKey     string
	DBPath        string
	FrontendURL   string
	CookiesFile   string // passed through to the extraction tool
	ProxyURL      string // passed through to the extraction tool
	Bitrate       int
	SocketTimeout int
	Retries       int
	WorkspaceBase string
	Production    bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          envInt("PORT", DefaultPort),
		SecretKey:     envString("SECRET_KEY", DefaultSecretKey),
		DBPath:        envString("DB_PATH", DefaultDBPath),
		FrontendURL:   envString("FRONTEND_URL", ""),
		CookiesFile:   envString("YOUTUBE_COOKIES_FILE", ""),
		ProxyURL:      envString("YTDLP_PROXY", ""),
		Bitrate:       envInt("AUDIO_BITRATE", DefaultBitrate),
		SocketTimeout: envInt("SOCKET_TIMEOUT", DefaultSocketTimeoutSec),
		Retries:       envInt("DOWNLOAD_RETRIES", DefaultRetries),
		WorkspaceBase: envString("WORKSPACE_BASE", ""),
		Production:    envString("APP_ENV", "production") != "development",
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks value ranges. An out-of-range value is an operator
// mistake worth failing on rather than clamping.
func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Bitrate < MinBitrate || c.Bitrate > MaxBitrate {
		return fmt.Errorf("bitrate must be between %d and %d kbps, got %d", MinBitrate, MaxBitrate, c.Bitrate)
	}
	if c.SocketTimeout < 1 {
		return fmt.Errorf("socket timeout must be positive, got %d", c.SocketTimeout)
	}
	if c.Retries < 1 {
		return fmt.Errorf("retries must be positive, got %d", c.Retries)
	}
	if c.CookiesFile != "" {
		if _, err := os.Stat(c.CookiesFile); err != nil {
			return fmt.Errorf("cookies file not readable: %w", err)
		}
	}
	return nil
}

// AllowedOrigins returns the CORS origin list: the local development
// origins plus the deployed frontend when configured.
func (c *Config) AllowedOrigins() []string {
	origins := append([]string(nil), devOrigins...)
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	return origins
}

// UsesDefaultSecret reports whether the session secret was left at its
// development default.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
