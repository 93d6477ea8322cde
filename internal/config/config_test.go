package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected default port: %q", cfg.Server.Port)
	}
	if cfg.Backend.BaseURL != "http://localhost" {
		t.Fatalf("unexpected default backend base_url: %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.APIPrefix != "/api" {
		t.Fatalf("unexpected default api prefix: %q", cfg.Backend.APIPrefix)
	}
	if cfg.Backend.TimeoutSeconds != 15 {
		t.Fatalf("unexpected default backend timeout: %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Fatalf("unexpected default store driver: %q", cfg.Store.Driver)
	}
	if cfg.Checkout.DefaultCountry != "India" {
		t.Fatalf("unexpected default country: %q", cfg.Checkout.DefaultCountry)
	}
	if cfg.Security.LoginRateLimit.MaxAttempts != 5 {
		t.Fatalf("unexpected default login rate limit: %d", cfg.Security.LoginRateLimit.MaxAttempts)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "https://shop.example.com")

	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Fatalf("env override for port not applied: %q", cfg.Server.Port)
	}
	if cfg.Backend.BaseURL != "https://shop.example.com" {
		t.Fatalf("env override for backend base_url not applied: %q", cfg.Backend.BaseURL)
	}
}
