package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration values
type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	SubscribeEndpoint string
	SubscribeTimeout  time.Duration

	DoneURL              string
	AllowedRedirectHosts []string
	AllowedOrigins       []string

	CookieDomain   string
	CookieTTLDays  int
	CookieHashKey  string
	CookieBlockKey string

	LandingPage string
}

const (
	defaultCookieTTLDays = 3650
	// a hundred years; larger values overflow time.Duration once converted
	maxCookieTTLDays = 36500
)

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SUBSCRIBE_ENDPOINT", "http://s.nlping.ru/subscribe/process/")
	v.SetDefault("SUBSCRIBE_TIMEOUT", "10s")
	v.SetDefault("DONE_URL", "/")
	v.SetDefault("COOKIE_TTL_DAYS", defaultCookieTTLDays)

	return &Config{
		Port:                 v.GetString("PORT"),
		GinMode:              v.GetString("GIN_MODE"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		SubscribeEndpoint:    v.GetString("SUBSCRIBE_ENDPOINT"),
		SubscribeTimeout:     v.GetDuration("SUBSCRIBE_TIMEOUT"),
		DoneURL:              v.GetString("DONE_URL"),
		AllowedRedirectHosts: splitList(v.GetString("ALLOWED_REDIRECT_HOSTS")),
		AllowedOrigins:       splitList(v.GetString("ALLOWED_ORIGINS")),
		CookieDomain:         v.GetString("COOKIE_DOMAIN"),
		CookieTTLDays:        cookieTTLDays(v.GetInt("COOKIE_TTL_DAYS")),
		CookieHashKey:        v.GetString("COOKIE_HASH_KEY"),
		CookieBlockKey:       v.GetString("COOKIE_BLOCK_KEY"),
		LandingPage:          v.GetString("LANDING_PAGE"),
	}
}

// cookieTTLDays falls back to the default for non-positive values and caps the rest
func cookieTTLDays(n int) int {
	switch {
	case n <= 0:
		return defaultCookieTTLDays
	case n > maxCookieTTLDays:
		return maxCookieTTLDays
	}
	return n
}

// splitList turns a comma separated env value into a trimmed slice
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
