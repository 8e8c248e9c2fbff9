// Package config loads runtime configuration for the gitreadme CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, including an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend API base URL
//	-d string   local database path/DSN
//	-i int      generation poll interval (seconds)
//	-n int      maximum number of generation polls
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "1s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "database_dsn": "gitreadme.db",
//	  "request_timeout": "15s",
//	  "poll_interval": "1s",
//	  "poll_max_attempts": 60,
//	  "login_retry_delay": "3s"
//	}
package config
