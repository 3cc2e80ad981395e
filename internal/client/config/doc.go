// Package config loads runtime configuration for the naijatax CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. YAML when the name
//     ends in .yaml or .yml, JSON otherwise.
//  3. Environment variables prefixed with NAIJATAX_, optionally read from a
//     dotenv file (-e/-env, or ./.env when it exists).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the tax backend
//	-t int      request timeout (seconds)
//	-d string   local database path
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so "30s" and integer nanoseconds both work:
//
//	{
//	  "server_url": "https://api.example.ng",
//	  "request_timeout": "30s",
//	  "database_path": "naijatax.db",
//	  "log_level": "info"
//	}
//
// # Environment
//
//	NAIJATAX_SERVER_URL, NAIJATAX_REQUEST_TIMEOUT (e.g. "45s"),
//	NAIJATAX_DATABASE_PATH, NAIJATAX_LOG_LEVEL
package config
