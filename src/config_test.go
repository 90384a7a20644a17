package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryansname/bmscheck/src/advisor"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, v := range thresholdEnvVars {
		t.Setenv(v.name, "")
	}
	t.Setenv("MQTT_BROKER", "")
	t.Setenv("MQTT_CLIENT_ID", "")
	t.Setenv("BMS_TOPIC_PREFIX", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, advisor.DefaultThresholds(), cfg.Thresholds)
	assert.Equal(t, "homeassistant.lan", cfg.MQTTBroker)
	assert.Equal(t, "bmscheck", cfg.MQTTClientID)
	assert.Equal(t, "bmscheck", cfg.TopicPrefix)
}

func TestLoadConfig_ThresholdOverrides(t *testing.T) {
	t.Setenv("BMS_HEALTH_MIN", "0.6")
	t.Setenv("BMS_CHARGE_RATE_MAX", "0.8")
	t.Setenv("BMS_SOC_MIN", "10")
	t.Setenv("BMS_SOC_MAX", "90")
	t.Setenv("BMS_TEMP_MIN", "-5")
	t.Setenv("BMS_TEMP_MAX", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, advisor.Thresholds{
		HealthMin:     0.6,
		ChargeRateMax: 0.8,
		SOCMin:        10,
		SOCMax:        90,
		TempMin:       -5,
		TempMax:       50,
	}, cfg.Thresholds)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("unparseable value", func(t *testing.T) {
		t.Setenv("BMS_SOC_MAX", "eighty")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "parsing BMS_SOC_MAX")
	})

	t.Run("inverted range", func(t *testing.T) {
		t.Setenv("BMS_TEMP_MIN", "60")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "invalid thresholds")
	})
}

func TestEvaluatorConfig(t *testing.T) {
	cfg := AppConfig{Thresholds: advisor.DefaultThresholds(), TopicPrefix: "garage_bms"}
	ec := cfg.EvaluatorConfig()

	assert.Equal(t, "garage_bms/reading/set", ec.RequestTopic)
	assert.Equal(t, "garage_bms/verdict/state", ec.VerdictTopic)
	assert.Equal(t, "homeassistant/binary_sensor/garage_bms_verdict/config", ec.ConfigTopic)
	assert.Equal(t, cfg.Thresholds, ec.Thresholds)
}

func TestHasMQTTCredentials(t *testing.T) {
	cfg := AppConfig{MQTTUsername: "user"}
	assert.False(t, cfg.HasMQTTCredentials())
	cfg.MQTTPassword = "pass"
	assert.True(t, cfg.HasMQTTCredentials())
}
