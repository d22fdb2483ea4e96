package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/flagx"
)

// Duration accepts either a Go duration string ("3s") or integer
// nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*d = Duration(time.Duration(x))
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// leave the corresponding Config field untouched.
type JsonConfig struct {
	BaseURL        string            `json:"base_url"`
	Endpoints      map[string]string `json:"endpoints"`
	LoginEndpoint  string            `json:"login_endpoint"`
	RequestTimeout Duration          `json:"request_timeout"`
	RateLimit      float64           `json:"rate_limit"`
	RateBurst      int               `json:"rate_burst"`
	DatabasePath   string            `json:"database_path"`
	SessionKey     string            `json:"session_key"`
	RememberFor    Duration          `json:"remember_for"`
	LogLevel       string            `json:"log_level"`
}

// endpointKeyFromName resolves "CLIENT_CREATE" (optionally suffixed with
// "_ENDPOINT") into its EndpointKey.
func endpointKeyFromName(name string) (EndpointKey, bool) {
	name = strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(name)), "_ENDPOINT")
	for _, key := range allEndpointKeys() {
		if name == key.Kind.String()+"_"+key.Op.EndpointName() {
			return key, true
		}
	}
	return EndpointKey{}, false
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. It panics on read or unmarshal errors, and on unknown endpoint
// names, so misconfiguration surfaces at startup.
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

	applyJson(cfg, &jc)
}

func applyJson(cfg *Config, jc *JsonConfig) {
	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	for name, tpl := range jc.Endpoints {
		key, ok := endpointKeyFromName(name)
		if !ok {
			panic(fmt.Sprintf("config: unknown endpoint %q", name))
		}
		if cfg.Endpoints == nil {
			cfg.Endpoints = make(map[EndpointKey]string)
		}
		cfg.Endpoints[key] = tpl
	}
	if jc.LoginEndpoint != "" {
		cfg.LoginEndpoint = jc.LoginEndpoint
	}
	if jc.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout)
	}
	if jc.RateLimit > 0 {
		cfg.RateLimit = jc.RateLimit
	}
	if jc.RateBurst > 0 {
		cfg.RateBurst = jc.RateBurst
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.SessionKey != "" {
		cfg.SessionKey = jc.SessionKey
	}
	if jc.RememberFor > 0 {
		cfg.RememberFor = time.Duration(jc.RememberFor)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
