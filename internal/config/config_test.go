package config

import (
	"testing"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestFromLookup(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":                "9090",
		"QR_LOG_LEVEL":        "DEBUG",
		"QR_MAX_UPLOAD_BYTES": "2048",
		"QR_RESAMPLER":        "CatmullRom",
		"QR_SESSION_LIMIT":    "3",
		"QR_GIN_MODE":         "test",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := Config{
		Addr:           ":9090",
		LogLevel:       "debug",
		MaxUploadBytes: 2048,
		Resampler:      ResamplerCatmullRom,
		SessionLimit:   3,
		GinMode:        "test",
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestFromLookupErrors(t *testing.T) {
	tests := []struct {
		desc string
		env  map[string]string
	}{
		{desc: "bad upload size", env: map[string]string{"QR_MAX_UPLOAD_BYTES": "lots"}},
		{desc: "negative upload size", env: map[string]string{"QR_MAX_UPLOAD_BYTES": "-1"}},
		{desc: "unknown resampler", env: map[string]string{"QR_RESAMPLER": "nearest"}},
		{desc: "zero sessions", env: map[string]string{"QR_SESSION_LIMIT": "0"}},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			if _, err := FromLookup(lookupFrom(test.env)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
