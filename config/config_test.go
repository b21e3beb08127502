package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDuration_ParsesDurationAndSeconds(t *testing.T) {
	t.Setenv("TEST_TIMEOUT_DURATION", "1500ms")
	t.Setenv("TEST_TIMEOUT_SECONDS", "7")
	t.Setenv("TEST_TIMEOUT_GARBAGE", "soon")

	assert.Equal(t, 1500*time.Millisecond, getEnvDuration("TEST_TIMEOUT_DURATION", time.Second))
	assert.Equal(t, 7*time.Second, getEnvDuration("TEST_TIMEOUT_SECONDS", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("TEST_TIMEOUT_GARBAGE", time.Second))
	assert.Equal(t, time.Minute, getEnvDuration("TEST_TIMEOUT_UNSET", time.Minute))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGO_ENABLED", "false")
	t.Setenv("QUERY_DEFAULT_LIMIT", "50")

	err := LoadConfig()
	assert.NoError(t, err)
	assert.False(t, Cfg.MongoEnabled)
	assert.Equal(t, 50, Cfg.QueryDefaultLimit)
	assert.Equal(t, "admin", Cfg.AuthAdminRole)
	assert.Equal(t, time.Minute, Cfg.NoticeTTL)
}
