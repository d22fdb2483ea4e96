package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
)

// EndpointKey addresses one endpoint template: an entity kind and an op.
type EndpointKey struct {
	Kind models.Kind
	Op   models.Op
}

// EnvName is the environment variable holding the template,
// e.g. HEARING_CALENDAR_RETRIEVE_ENDPOINT.
func (k EndpointKey) EnvName() string {
	return fmt.Sprintf("%s_%s_ENDPOINT", k.Kind, k.Op.EndpointName())
}

// Config holds runtime settings for the caseadmin client.
//
// Endpoint templates may contain {placeholder} tokens that are filled from
// path parameters at request time; they are joined to BaseURL.
type Config struct {
	BaseURL        string
	Endpoints      map[EndpointKey]string
	LoginEndpoint  string
	RequestTimeout time.Duration
	RateLimit      float64
	RateBurst      int
	DatabasePath   string
	SessionKey     string
	RememberFor    time.Duration
	LogLevel       string
}

const apiPrefix = "/api/v1/"

// DefaultEndpoint returns the built-in template for kind and op:
// collection paths for CREATE/RETRIEVE, item paths for UPDATE/DELETE.
func DefaultEndpoint(kind models.Kind, op models.Op) string {
	base := apiPrefix + kind.Path()
	switch op {
	case models.OpUpdate, models.OpDelete:
		return base + "/{id}"
	default:
		return base
	}
}

func allEndpointKeys() []EndpointKey {
	var keys []EndpointKey
	for _, k := range models.AllKinds() {
		for _, op := range models.AllOps() {
			keys = append(keys, EndpointKey{Kind: k, Op: op})
		}
	}
	return keys
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000"
	c.Endpoints = make(map[EndpointKey]string)
	for _, key := range allEndpointKeys() {
		c.Endpoints[key] = DefaultEndpoint(key.Kind, key.Op)
	}
	c.LoginEndpoint = apiPrefix + "auth/login"
	c.RequestTimeout = 30 * time.Second
	c.RateLimit = 10
	c.RateBurst = 5
	c.DatabasePath = "caseadmin.db"
	c.RememberFor = 7 * 24 * time.Hour
	c.LogLevel = "info"
}

// Endpoint returns the configured template for kind and op.
func (c *Config) Endpoint(kind models.Kind, op models.Op) (string, bool) {
	tpl, ok := c.Endpoints[EndpointKey{Kind: kind, Op: op}]
	return tpl, ok && strings.TrimSpace(tpl) != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (optionally seeded from a dotenv file)
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
