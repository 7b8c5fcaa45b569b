package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtran/taskkeeper/internal/timex"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 5*time.Minute, cfg.OTPValidityDuration)
	assert.Equal(t, time.Minute, cfg.ReminderInterval)
	assert.Equal(t, 10*time.Minute, cfg.ReminderWindow)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLMModel)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestApplyJSON_OverridesOnlySetFields(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	otp := &timex.Duration{Duration: 2 * time.Minute}
	applyJSON(cfg, &JSONConfig{
		EndpointAddr:        ":9090",
		SecretKey:           "from-json",
		OTPValidityDuration: otp,
	})

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "from-json", cfg.SecretKey)
	assert.Equal(t, 2*time.Minute, cfg.OTPValidityDuration)

	// untouched fields keep their defaults
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, time.Minute, cfg.ReminderInterval)
	require.NotEmpty(t, cfg.DatabaseDSN)
}
