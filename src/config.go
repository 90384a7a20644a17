package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ryansname/bmscheck/src/advisor"
)

// AppConfig holds shared configuration loaded from the environment
type AppConfig struct {
	Thresholds   advisor.Thresholds
	MQTTBroker   string
	MQTTUsername string
	MQTTPassword string
	MQTTClientID string
	TopicPrefix  string
}

// EvaluatorConfig holds configuration for the evaluator worker
type EvaluatorConfig struct {
	Name         string
	Thresholds   advisor.Thresholds
	RequestTopic string
	VerdictTopic string
	ConfigTopic  string
}

// thresholdEnvVars maps each override variable to the field it sets
var thresholdEnvVars = []struct {
	name  string
	field func(*advisor.Thresholds) *float64
}{
	{"BMS_HEALTH_MIN", func(t *advisor.Thresholds) *float64 { return &t.HealthMin }},
	{"BMS_CHARGE_RATE_MAX", func(t *advisor.Thresholds) *float64 { return &t.ChargeRateMax }},
	{"BMS_SOC_MIN", func(t *advisor.Thresholds) *float64 { return &t.SOCMin }},
	{"BMS_SOC_MAX", func(t *advisor.Thresholds) *float64 { return &t.SOCMax }},
	{"BMS_TEMP_MIN", func(t *advisor.Thresholds) *float64 { return &t.TempMin }},
	{"BMS_TEMP_MAX", func(t *advisor.Thresholds) *float64 { return &t.TempMax }},
}

// LoadConfig builds an AppConfig from environment variables.
// Call godotenv.Load first to pick up a .env file.
func LoadConfig() (AppConfig, error) {
	cfg := AppConfig{
		Thresholds:   advisor.DefaultThresholds(),
		MQTTBroker:   getEnv("MQTT_BROKER", "homeassistant.lan"),
		MQTTUsername: os.Getenv("MQTT_USERNAME"),
		MQTTPassword: os.Getenv("MQTT_PASSWORD"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "bmscheck"),
		TopicPrefix:  getEnv("BMS_TOPIC_PREFIX", "bmscheck"),
	}

	for _, v := range thresholdEnvVars {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return AppConfig{}, fmt.Errorf("parsing %s: %w", v.name, err)
		}
		*v.field(&cfg.Thresholds) = value
	}

	if err := cfg.Thresholds.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid thresholds: %w", err)
	}

	return cfg, nil
}

// EvaluatorConfig creates an EvaluatorConfig from the shared AppConfig
func (c *AppConfig) EvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		Name:         "Battery Advisor",
		Thresholds:   c.Thresholds,
		RequestTopic: c.TopicPrefix + "/reading/set",
		VerdictTopic: c.TopicPrefix + "/verdict/state",
		ConfigTopic:  "homeassistant/binary_sensor/" + c.TopicPrefix + "_verdict/config",
	}
}

// HasMQTTCredentials reports whether both username and password are set
func (c *AppConfig) HasMQTTCredentials() bool {
	return c.MQTTUsername != "" && c.MQTTPassword != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
