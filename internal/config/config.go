// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Resampler names accepted by QR_RESAMPLER.
const (
	ResamplerLanczos    = "lanczos"
	ResamplerCatmullRom = "catmullrom"
)

// Config is the service configuration.
type Config struct {
	// Addr is the listen address, ":" + PORT.
	Addr string

	// LogLevel is one of debug, info, warn or error.
	LogLevel string

	// MaxUploadBytes caps multipart uploads (image and logo together).
	MaxUploadBytes int64

	// Resampler selects the logo resampler.
	Resampler string

	// SessionLimit is the maximum number of live editor sessions.
	SessionLimit int

	// GinMode is passed to gin.SetMode.
	GinMode string
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Addr:           ":8080",
		LogLevel:       "info",
		MaxUploadBytes: 10 << 20,
		Resampler:      ResamplerLanczos,
		SessionLimit:   256,
		GinMode:        "release",
	}
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup, which has the
// signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if port, ok := lookup("PORT"); ok && port != "" {
		cfg.Addr = ":" + port
	}
	if lvl, ok := lookup("QR_LOG_LEVEL"); ok && lvl != "" {
		cfg.LogLevel = strings.ToLower(lvl)
	}
	if v, ok := lookup("QR_MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid QR_MAX_UPLOAD_BYTES %q", v)
		}
		cfg.MaxUploadBytes = n
	}
	if v, ok := lookup("QR_RESAMPLER"); ok && v != "" {
		switch v = strings.ToLower(v); v {
		case ResamplerLanczos, ResamplerCatmullRom:
			cfg.Resampler = v
		default:
			return cfg, fmt.Errorf("unknown QR_RESAMPLER %q", v)
		}
	}
	if v, ok := lookup("QR_SESSION_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid QR_SESSION_LIMIT %q", v)
		}
		cfg.SessionLimit = n
	}
	if v, ok := lookup("QR_GIN_MODE"); ok && v != "" {
		cfg.GinMode = v
	}

	return cfg, nil
}
