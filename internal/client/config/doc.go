// Package config loads runtime configuration for the caseadmin client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config (see parseJson).
//  3. Environment variables, optionally seeded from a dotenv file given via
//     -e or -env (see parseEnv). Variables already set in the process win
//     over the dotenv file.
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-d string   local SQLite database path
//	-l string   log level (debug, info, warn, error)
//
// Environment
//
//	BASE_URL, USER_LOGIN_ENDPOINT, REQUEST_TIMEOUT, RATE_LIMIT, RATE_BURST,
//	DATABASE_PATH, SESSION_KEY, REMEMBER_FOR, LOG_LEVEL and one template per
//	entity and op: <ENTITY>_<CREATE|RETRIEVE|UPDATE|DELETE>_ENDPOINT, e.g.
//	CLIENT_RETRIEVE_ENDPOINT=/api/v1/clients.
//
// # JSON schema
//
//	{
//	  "base_url": "http://127.0.0.1:8000",
//	  "endpoints": {"CLIENT_CREATE": "/api/v1/clients"},
//	  "request_timeout": "30s",
//	  "remember_for": "168h"
//	}
package config
