package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SUBSCRIBE_ENDPOINT", "")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3650, cfg.CookieTTLDays)
	assert.Equal(t, 10*time.Second, cfg.SubscribeTimeout)
	assert.Equal(t, "http://s.nlping.ru/subscribe/process/", cfg.SubscribeEndpoint)
	assert.Empty(t, cfg.AllowedRedirectHosts)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("COOKIE_TTL_DAYS", "30")
	t.Setenv("SUBSCRIBE_TIMEOUT", "3s")
	t.Setenv("ALLOWED_REDIRECT_HOSTS", "nlping.ru, www.nlping.ru ,")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30, cfg.CookieTTLDays)
	assert.Equal(t, 3*time.Second, cfg.SubscribeTimeout)
	assert.Equal(t, []string{"nlping.ru", "www.nlping.ru"}, cfg.AllowedRedirectHosts)
}

func TestLoadConfigBoundsCookieTTL(t *testing.T) {
	cases := map[string]int{
		"999999999": maxCookieTTLDays,
		"-5":        defaultCookieTTLDays,
		"0":         defaultCookieTTLDays,
		"36500":     36500,
	}

	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("COOKIE_TTL_DAYS", raw)
			cfg := LoadConfig()
			assert.Equal(t, want, cfg.CookieTTLDays)
			assert.Greater(t, int64(time.Duration(cfg.CookieTTLDays)*24*time.Hour), int64(0))
		})
	}
}
