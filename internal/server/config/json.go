package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/minhtran/taskkeeper/internal/flagx"
	"github.com/minhtran/taskkeeper/internal/timex"
)

// JSONConfig mirrors Config for unmarshalling. Duration fields use
// timex.Duration so files can say "5m" instead of nanosecond counts.
// Empty fields leave the corresponding Config value untouched.
type JSONConfig struct {
	EndpointAddr          string          `json:"endpoint_addr"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	OTPValidityDuration   *timex.Duration `json:"otp_validity_duration"`
	ReminderInterval      *timex.Duration `json:"reminder_interval"`
	ReminderWindow        *timex.Duration `json:"reminder_window"`
	MailAPIKey            string          `json:"mail_api_key"`
	MailFrom              string          `json:"mail_from"`
	MailEndpoint          string          `json:"mail_endpoint"`
	LLMAPIKey             string          `json:"llm_api_key"`
	LLMModel              string          `json:"llm_model"`
	LLMEndpoint           string          `json:"llm_endpoint"`
}

// parseJSON loads configuration from the file named by the -c/-config flags.
// When no flag is given, nothing is loaded. An unreadable or invalid file
// panics: a half-applied config is worse than a crash at startup.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	applyJSON(config, c)
}

func applyJSON(config *Config, c *JSONConfig) {
	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.OTPValidityDuration != nil {
		config.OTPValidityDuration = time.Duration(c.OTPValidityDuration.Duration)
	}
	if c.ReminderInterval != nil {
		config.ReminderInterval = time.Duration(c.ReminderInterval.Duration)
	}
	if c.ReminderWindow != nil {
		config.ReminderWindow = time.Duration(c.ReminderWindow.Duration)
	}
	if c.MailAPIKey != "" {
		config.MailAPIKey = c.MailAPIKey
	}
	if c.MailFrom != "" {
		config.MailFrom = c.MailFrom
	}
	if c.MailEndpoint != "" {
		config.MailEndpoint = c.MailEndpoint
	}
	if c.LLMAPIKey != "" {
		config.LLMAPIKey = c.LLMAPIKey
	}
	if c.LLMModel != "" {
		config.LLMModel = c.LLMModel
	}
	if c.LLMEndpoint != "" {
		config.LLMEndpoint = c.LLMEndpoint
	}
}
