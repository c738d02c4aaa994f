package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hjson/hjson-go"
)

const (
	DefaultListen                      = "127.0.0.1:8000"
	DefaultHTTPTimeout                 = 10 * time.Second
	DefaultCircuitBreakerOpenThreshold = 5
	DefaultCircuitBreakerHalfOpen      = time.Minute
	DefaultCircuitBreakerResetFailures = 20 * time.Second

	onLookupErrorShow = "show"
	onLookupErrorHide = "hide"
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	return d.UnmarshalText([]byte(vv))
}

func (d *duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type configHTTPClient struct {
	HTTPTimeout                 duration `json:"http_timeout" toml:"http_timeout"`
	CircuitBreakerOpenThreshold uint32   `json:"circuit_breaker_open_threshold" toml:"circuit_breaker_open_threshold"`
	CircuitBreakerHalfOpen      duration `json:"circuit_breaker_half_open_timeout" toml:"circuit_breaker_half_open_timeout"`
	CircuitBreakerResetFailures duration `json:"circuit_breaker_reset_failures_timeout" toml:"circuit_breaker_reset_failures_timeout"`
}

func (c configHTTPClient) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return c.HTTPTimeout.Duration
}

func (c configHTTPClient) GetCircuitBreakerOpenThreshold() uint32 {
	if c.CircuitBreakerOpenThreshold == 0 {
		return DefaultCircuitBreakerOpenThreshold
	}

	return c.CircuitBreakerOpenThreshold
}

func (c configHTTPClient) GetCircuitBreakerHalfOpenTimeout() time.Duration {
	if c.CircuitBreakerHalfOpen.Duration == 0 {
		return DefaultCircuitBreakerHalfOpen
	}

	return c.CircuitBreakerHalfOpen.Duration
}

func (c configHTTPClient) GetCircuitBreakerResetFailuresTimeout() time.Duration {
	if c.CircuitBreakerResetFailures.Duration == 0 {
		return DefaultCircuitBreakerResetFailures
	}

	return c.CircuitBreakerResetFailures.Duration
}

type configProvider struct {
	configHTTPClient

	Name               string            `json:"name" toml:"name"`
	SpecificParameters map[string]string `json:"specific_parameters" toml:"specific_parameters"`
}

func (c configProvider) GetName() string {
	return c.Name
}

func (c configProvider) GetSpecificParameters() map[string]string {
	if c.SpecificParameters == nil {
		return map[string]string{}
	}

	return c.SpecificParameters
}

type configReverseGeocoder struct {
	configHTTPClient

	Enabled  bool   `json:"enabled" toml:"enabled"`
	Endpoint string `json:"endpoint" toml:"endpoint"`
	APIKey   string `json:"api_key" toml:"api_key"`
}

type configCountries struct {
	Driver string `json:"driver" toml:"driver"`
	DSN    string `json:"dsn" toml:"dsn"`
	Table  string `json:"table" toml:"table"`
	Seed   bool   `json:"seed" toml:"seed"`
}

func (c configCountries) Enabled() bool {
	return c.Driver != ""
}

type configBasicAuth struct {
	User     string `json:"user" toml:"user"`
	Password string `json:"password" toml:"password"`
}

func (c configBasicAuth) Enabled() bool {
	return c.User != "" || c.Password != ""
}

type config struct {
	Listen            string                `json:"listen" toml:"listen"`
	OnLookupError     string                `json:"on_lookup_error" toml:"on_lookup_error"`
	TrustProxyHeaders bool                  `json:"trust_proxy_headers" toml:"trust_proxy_headers"`
	Provider          configProvider        `json:"provider" toml:"provider"`
	ReverseGeocoder   configReverseGeocoder `json:"reverse_geocoder" toml:"reverse_geocoder"`
	Countries         configCountries       `json:"countries" toml:"countries"`
	BasicAuth         configBasicAuth       `json:"basic_auth" toml:"basic_auth"`
}

func (c config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}

	return c.Listen
}

func (c config) ShowOnLookupError() bool {
	return c.OnLookupError == onLookupErrorShow
}

func parseConfig(path string) (*config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	conf := config{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(content), &conf); err != nil {
			return nil, fmt.Errorf("cannot parse toml: %w", err)
		}
	default:
		rawMap := map[string]interface{}{}

		if err := hjson.Unmarshal(content, &rawMap); err != nil {
			return nil, fmt.Errorf("cannot parse json: %w", err)
		}

		rawBytes, _ := json.Marshal(rawMap)

		if err := json.Unmarshal(rawBytes, &conf); err != nil {
			return nil, fmt.Errorf("incorrect config structure: %w", err)
		}
	}

	if err := validateConfig(&conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

func validateConfig(conf *config) error {
	if _, _, err := net.SplitHostPort(conf.GetListen()); err != nil {
		return fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	switch conf.OnLookupError {
	case "", onLookupErrorShow, onLookupErrorHide:
	default:
		return fmt.Errorf("incorrect on_lookup_error %s", conf.OnLookupError)
	}

	if conf.Provider.GetName() == "" {
		return fmt.Errorf("provider name is not defined")
	}

	if conf.Countries.Enabled() && conf.Countries.DSN == "" {
		return fmt.Errorf("dsn for countries database is not defined")
	}

	return nil
}
