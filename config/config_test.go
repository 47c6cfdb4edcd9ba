package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadForTest(t *testing.T) AppConfig {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	Reset()
	t.Cleanup(Reset)
	return Load()
}

func TestLoadDefaults(t *testing.T) {
	c := loadForTest(t)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "Asia/Seoul", c.Timezone)
	assert.Equal(t, 50, c.RankingLimit)
	assert.Equal(t, 60, c.RateLimitPerMinute)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("RANKING_LIMIT", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	c := loadForTest(t)

	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, "UTC", c.Timezone)
	assert.Equal(t, 10, c.RankingLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
}

func TestGetCachesLoad(t *testing.T) {
	loadForTest(t)

	first := Get()
	second := Get()
	assert.Equal(t, first, second)
}

func TestLocation(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")
	loadForTest(t)
	assert.Equal(t, time.UTC, Location())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Not/AZone")
	loadForTest(t)

	loc := Location()
	require.NotNil(t, loc)
	assert.Equal(t, time.UTC, loc)
}
