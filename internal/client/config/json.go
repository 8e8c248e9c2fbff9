package config

import (
	"encoding/json"
	"os"

	"gitreadme/internal/flagx"
	"gitreadme/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "1s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	DatabaseDSN     string         `json:"database_dsn"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	PollInterval    timex.Duration `json:"poll_interval"`
	PollMaxAttempts int            `json:"poll_max_attempts"`
	LoginRetryDelay timex.Duration `json:"login_retry_delay"`
}

// parseJson overlays Config with values loaded from a JSON file named via
// the -c or -config flags. Absent file path means nothing is loaded. Only
// fields present in the JSON override the current values.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PollInterval.Duration > 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.PollMaxAttempts > 0 {
		cfg.PollMaxAttempts = jc.PollMaxAttempts
	}
	if jc.LoginRetryDelay.Duration > 0 {
		cfg.LoginRetryDelay = jc.LoginRetryDelay.Duration
	}
}
