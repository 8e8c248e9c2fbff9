package config

import "time"

// Config holds runtime settings for the gitreadme CLI.
//
// Fields:
//   - APIBaseURL: origin of the backend HTTP API.
//   - DatabaseDSN: path/DSN of the local SQLite database.
//   - RequestTimeout: per-request cap on backend calls.
//   - PollInterval: delay between generation status polls.
//   - PollMaxAttempts: poll cap before a generation attempt is declared
//     timed out.
//   - LoginRetryDelay: pause after a failed OAuth callback before returning
//     to the sign-in prompt, giving the user time to read the message.
type Config struct {
	APIBaseURL      string
	DatabaseDSN     string
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	PollMaxAttempts int
	LoginRetryDelay time.Duration
}

// LoadDefaults populates c with sensible defaults for local development.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.DatabaseDSN = "gitreadme.db"
	c.RequestTimeout = 15 * time.Second
	c.PollInterval = 1 * time.Second
	c.PollMaxAttempts = 60
	c.LoginRetryDelay = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// one was named), and command-line flags. Later sources take precedence
// over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
