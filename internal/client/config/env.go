package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. When -e/-env names a
// dotenv file it is loaded first; godotenv never overrides variables that
// are already set. A missing dotenv file panics like a missing JSON file.
func parseEnv(cfg *Config) {
	if envFile := flagx.EnvFileFlags(); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	}
	applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	str("BASE_URL", &cfg.BaseURL)
	str("USER_LOGIN_ENDPOINT", &cfg.LoginEndpoint)
	str("DATABASE_PATH", &cfg.DatabasePath)
	str("SESSION_KEY", &cfg.SessionKey)
	str("LOG_LEVEL", &cfg.LogLevel)

	if v, ok := lookup("REQUEST_TIMEOUT"); ok {
		if d, err := parseDurationOrSeconds(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := lookup("REMEMBER_FOR"); ok {
		if d, err := parseDurationOrSeconds(v); err == nil {
			cfg.RememberFor = d
		}
	}
	if v, ok := lookup("RATE_LIMIT"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateLimit = f
		}
	}
	if v, ok := lookup("RATE_BURST"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateBurst = n
		}
	}

	if cfg.Endpoints == nil {
		cfg.Endpoints = make(map[EndpointKey]string)
	}
	for _, key := range allEndpointKeys() {
		if v, ok := lookup(key.EnvName()); ok && v != "" {
			cfg.Endpoints[key] = v
		}
	}
}

// parseDurationOrSeconds accepts "30s"-style durations or a bare number of
// seconds.
func parseDurationOrSeconds(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
